package parser

import "strings"

// numFmtClass classifies a number format by what its tokens render.
type numFmtClass int

const (
	fmtNumber numFmtClass = iota
	fmtDate
	fmtTimeOfDay
)

// builtinDateFormats lists built-in number format ids that render dates.
// Ids 27-36 and 50-58 are the East Asian locale date formats.
var builtinDateFormats = map[int]numFmtClass{
	14: fmtDate, 15: fmtDate, 16: fmtDate, 17: fmtDate,
	18: fmtTimeOfDay, 19: fmtTimeOfDay, 20: fmtTimeOfDay, 21: fmtTimeOfDay,
	22: fmtDate,
	27: fmtDate, 28: fmtDate, 29: fmtDate, 30: fmtDate, 31: fmtDate,
	32: fmtTimeOfDay, 33: fmtTimeOfDay, 34: fmtTimeOfDay, 35: fmtTimeOfDay,
	36: fmtDate,
	45: fmtTimeOfDay, 46: fmtTimeOfDay, 47: fmtTimeOfDay,
	50: fmtDate, 51: fmtDate, 52: fmtDate, 53: fmtDate, 54: fmtDate,
	55: fmtDate, 56: fmtDate, 57: fmtDate, 58: fmtDate,
}

// classifyNumFmt returns the class of a cell's number format.
// custom is the format code for ids that are not built in.
func classifyNumFmt(id int, custom string) numFmtClass {
	if class, ok := builtinDateFormats[id]; ok {
		return class
	}
	if custom == "" {
		return fmtNumber
	}
	return classifyFormatCode(custom)
}

// classifyFormatCode inspects the date and time tokens of a format code.
// Quoted literals, escaped characters and bracketed sections (locale, color,
// conditions) are ignored; elapsed-time brackets such as [h] count as time.
func classifyFormatCode(code string) numFmtClass {
	// Only the first section (positive numbers) decides.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	var hasDate, hasTime, hasMonthOrMinute bool
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case ch == '"':
			inQuote = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return fmtNumber
			}
			switch strings.ToLower(code[i+1 : i+end]) {
			case "h", "hh", "m", "mm", "s", "ss":
				hasTime = true
			}
			i += end
		default:
			switch ch {
			case 'y', 'Y', 'd', 'D':
				hasDate = true
			case 'h', 'H', 's', 'S':
				hasTime = true
			case 'm', 'M':
				hasMonthOrMinute = true
			}
		}
	}

	switch {
	case hasDate:
		return fmtDate
	case hasTime:
		// m next to h or s is minutes.
		return fmtTimeOfDay
	case hasMonthOrMinute:
		return fmtDate
	default:
		return fmtNumber
	}
}
