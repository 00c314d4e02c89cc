package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads configuration from environment variables.
// Unset variables take their default tag; the result is validated.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := fromEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envSource is the environment binding of one field, read from its
// env, envAlt, default and required tags.
type envSource struct {
	names    []string
	fallback string
	required bool
}

func sourceOf(f reflect.StructField) (envSource, bool) {
	name := f.Tag.Get("env")
	if name == "" {
		return envSource{}, false
	}
	src := envSource{
		names:    []string{name},
		fallback: f.Tag.Get("default"),
		required: f.Tag.Get("required") == "true",
	}
	if alt := f.Tag.Get("envAlt"); alt != "" {
		src.names = append(src.names, alt)
	}
	return src, true
}

// value returns the first non-empty variable in names, else the default.
func (s envSource) value() (string, error) {
	for _, name := range s.names {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if s.required {
		return "", fmt.Errorf("required environment variable %s is not set", s.names[0])
	}
	return s.fallback, nil
}

// fromEnv fills the tagged fields of the struct v, descending into sections.
func fromEnv(v reflect.Value) error {
	for _, f := range reflect.VisibleFields(v.Type()) {
		if !f.IsExported() || len(f.Index) > 1 {
			continue
		}
		dst := v.FieldByIndex(f.Index)

		if f.Type.Kind() == reflect.Struct {
			if err := fromEnv(dst); err != nil {
				return err
			}
			continue
		}

		src, ok := sourceOf(f)
		if !ok {
			continue
		}
		raw, err := src.value()
		if err != nil {
			return err
		}
		if raw == "" {
			continue
		}
		if err := decode(dst, raw); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", src.names[0], raw, err)
		}
	}
	return nil
}

// decode parses raw into dst according to the field type.
func decode(dst reflect.Value, raw string) error {
	if dst.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		dst.SetInt(int64(d))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		dst.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", dst.Type())
	}
	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Inquiry validation
	if c.Inquiry.Source == "" {
		errs = append(errs, "INQUIRY_SOURCE is required")
	}
	if c.Inquiry.Sheet == "" {
		errs = append(errs, "INQUIRY_SHEET is required")
	}
	if c.Inquiry.MaxRecords <= 0 {
		errs = append(errs, fmt.Sprintf("INQUIRY_MAX_RECORDS (%d) must be positive", c.Inquiry.MaxRecords))
	}
	if c.Inquiry.SkipRows < 0 {
		errs = append(errs, "INQUIRY_SKIP_ROWS must be non-negative")
	}
	if c.Inquiry.Output == "" {
		errs = append(errs, "INQUIRY_OUTPUT is required")
	}

	// Watch validation
	if c.Watch.Debounce < 0 {
		errs = append(errs, "WATCH_DEBOUNCE must be non-negative")
	}
	if c.Watch.Schedule != "" {
		if _, err := cron.ParseStandard(c.Watch.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("REFRESH_SCHEDULE (%q) is not a valid cron expression: %v", c.Watch.Schedule, err))
		}
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.Dir == "" {
		errs = append(errs, "SERVER_DIR is required")
	}
	if c.Server.BrowserDelay < 0 {
		errs = append(errs, "SERVER_BROWSER_DELAY must be non-negative")
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Logging.SeqURL != "" {
		if u, err := url.Parse(c.Logging.SeqURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("LOG_SEQ_URL (%q) must be an absolute URL", c.Logging.SeqURL))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Credentials in the Seq URL are masked.
func (c *Config) String() string {
	seq := ""
	if c.Logging.SeqURL != "" {
		seq = "[MASKED]"
		if u, err := url.Parse(c.Logging.SeqURL); err == nil {
			u.User = nil
			u.RawQuery = ""
			seq = u.String()
		}
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Inquiry: {Source: %q, Sheet: %q, MaxRecords: %d, SkipRows: %d, Output: %q}, ",
		c.Inquiry.Source, c.Inquiry.Sheet, c.Inquiry.MaxRecords, c.Inquiry.SkipRows, c.Inquiry.Output))
	b.WriteString(fmt.Sprintf("Watch: {Enabled: %v, Debounce: %s, Schedule: %q}, ",
		c.Watch.Enabled, c.Watch.Debounce, c.Watch.Schedule))
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d, Dir: %q}, ",
		c.Server.Host, c.Server.Port, c.Server.Dir))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, SeqURL: %q}",
		c.Logging.Level, c.Logging.Format, seq))
	b.WriteString("}")
	return b.String()
}
