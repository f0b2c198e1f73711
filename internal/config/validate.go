package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidSpan indicates a non-positive table span limit
	ErrInvalidSpan = errors.New("invalid table span")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogEncoding indicates an unknown log encoding
	ErrInvalidLogEncoding = errors.New("invalid log encoding")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	switch strings.ToLower(cfg.Output.Format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text', 'json' or 'yaml', got '%s'", ErrInvalidFormat, cfg.Output.Format))
	}

	if cfg.Table.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Table.Workers))
	}
	if cfg.Table.MaxSpan <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_span must be positive, got %d", ErrInvalidSpan, cfg.Table.MaxSpan))
	}

	// zero means no caching
	if cfg.Cache.Size < 0 {
		errs = append(errs, fmt.Errorf("%w: size cannot be negative, got %d", ErrInvalidCacheSize, cfg.Cache.Size))
	}

	if err := validateLog(&cfg.Log); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLog(cfg *LogConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	switch strings.ToLower(cfg.Encoding) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'console' or 'json', got '%s'", ErrInvalidLogEncoding, cfg.Encoding))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into one, keeping each wrapped so
// errors.Is still matches the individual sentinels.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
