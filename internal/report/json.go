package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/webdetect/internal/model"
)

// Payload is the JSON shape of a web detection result.
// All four keys are always present; an empty section is an empty array.
type Payload struct {
	PagesWithMatchingImages []model.WebPage   `json:"pages_with_matching_images"`
	FullMatchingImages      []model.WebImage  `json:"full_matching_images"`
	PartialMatchingImages   []model.WebImage  `json:"partial_matching_images"`
	WebEntities             []model.WebEntity `json:"web_entities"`
}

// NewPayload converts a result into its JSON shape.
// A nil result or nil lists become empty arrays, never null.
func NewPayload(result *model.Result) *Payload {
	result = orEmpty(result)

	p := &Payload{
		PagesWithMatchingImages: result.PagesWithMatchingImages,
		FullMatchingImages:      result.FullMatchingImages,
		PartialMatchingImages:   result.PartialMatchingImages,
		WebEntities:             result.WebEntities,
	}
	if p.PagesWithMatchingImages == nil {
		p.PagesWithMatchingImages = []model.WebPage{}
	}
	if p.FullMatchingImages == nil {
		p.FullMatchingImages = []model.WebImage{}
	}
	if p.PartialMatchingImages == nil {
		p.PartialMatchingImages = []model.WebImage{}
	}
	if p.WebEntities == nil {
		p.WebEntities = []model.WebEntity{}
	}

	return p
}

// Result converts the payload back into a model.Result.
func (p *Payload) Result() *model.Result {
	return &model.Result{
		PagesWithMatchingImages: p.PagesWithMatchingImages,
		FullMatchingImages:      p.FullMatchingImages,
		PartialMatchingImages:   p.PartialMatchingImages,
		WebEntities:             p.WebEntities,
	}
}

// JSONWriter outputs results as a JSON Payload.
// This format is used for tool integration and by the HTTP server.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result as a JSON Payload followed by a newline.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	return w.WriteValue(NewPayload(result))
}

// WriteValue encodes any value with the writer's settings.
// The HTTP server uses it for error bodies as well.
// URLs are written as-is: '&', '<' and '>' are not escaped.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}

	if err := enc.Encode(v); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
