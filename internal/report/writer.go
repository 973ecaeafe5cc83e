package report

import (
	"io"

	"github.com/nao1215/webdetect/internal/model"
)

// Writer defines the interface for report output.
// Implementations write detection results in various formats.
type Writer interface {
	// Write outputs the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.Result) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// orEmpty returns a non-nil result so writers never dereference nil.
func orEmpty(result *model.Result) *model.Result {
	if result == nil {
		return model.NewResult()
	}
	return result
}
