package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with errors.Is.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrEmptyListenAddr is returned when the HTTP listen address is empty.
	ErrEmptyListenAddr = errors.New("invalid listen address: must not be empty")

	// ErrInvalidReadHeaderTimeout is returned when the read header timeout is not positive.
	ErrInvalidReadHeaderTimeout = errors.New("invalid read header timeout: must be positive")

	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive.
	ErrInvalidShutdownTimeout = errors.New("invalid shutdown timeout: must be positive")
)
