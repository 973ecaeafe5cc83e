package pipeline

import "errors"

// ErrImagePathRequired is returned when the image reference is missing or empty.
// The message is part of the HTTP API and must not change.
var ErrImagePathRequired = errors.New("Image path is required.") //nolint:staticcheck // exact client-facing message

// Kind classifies pipeline failures.
type Kind int

const (
	// KindValidation means the input was missing or empty.
	KindValidation Kind = iota + 1

	// KindIO means a local image could not be read.
	KindIO

	// KindRemote means the remote annotation call failed for any reason,
	// including network, authentication and quota errors.
	KindRemote
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error is the error returned by Pipeline.Execute and Pipeline.Run.
// Its message is the message of the wrapped error, unchanged.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Step is the name of the step that failed.
	Step string

	// Err is the underlying error.
	Err error
}

// Error returns the underlying error message.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
