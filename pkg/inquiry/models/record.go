package models

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is one normalized row keyed by column name.
// Keys keep header order when serialized.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{fields: orderedmap.New[string, any]()}
}

// Set stores value under column. Setting an existing column keeps its position.
func (r Record) Set(column string, value any) {
	r.fields.Set(column, value)
}

// Get returns the value stored under column.
func (r Record) Get(column string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(column)
}

// Len returns the number of columns in the record.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	if r.fields == nil {
		return nil
	}
	cols := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}

// MarshalJSON encodes the record as a JSON object in column order.
// Strings are written without HTML escaping.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	if r.fields != nil {
		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if pair != r.fields.Oldest() {
				buf.WriteByte(',')
			}
			if err := encodeCompact(enc, &buf, pair.Key); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := encodeCompact(enc, &buf, pair.Value); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact encodes v without the newline Encoder appends.
func encodeCompact(enc *json.Encoder, buf *bytes.Buffer, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
