package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/webdetect/internal/model"
)

// TextWriter outputs the human-readable report of the detect command.
// Each populated section starts with a blank line and a count header,
// followed by one line per entry. Empty sections are omitted entirely.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in the fixed section order:
// pages, full matches, partial matches, web entities.
func (w *TextWriter) Write(result *model.Result) (int, error) {
	result = orEmpty(result)

	var sb strings.Builder

	w.writePages(&sb, result.PagesWithMatchingImages)
	w.writeImages(&sb, "Full Matches found: ", result.FullMatchingImages)
	w.writeImages(&sb, "Partial Matches found: ", result.PartialMatchingImages)
	w.writeEntities(&sb, result.WebEntities)

	if sb.Len() == 0 {
		return 0, nil
	}
	return io.WriteString(w.output, sb.String())
}

// writePages writes the pages with matching images section.
func (w *TextWriter) writePages(sb *strings.Builder, pages []model.WebPage) {
	if len(pages) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%d Pages with matching images retrieved\n", len(pages))
	for _, page := range pages {
		fmt.Fprintf(sb, "Url   : %s\n", page.URL)
	}
}

// writeImages writes a full or partial matches section.
// The header keeps its trailing space.
func (w *TextWriter) writeImages(sb *strings.Builder, header string, images []model.WebImage) {
	if len(images) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%d %s\n", len(images), header)
	for _, img := range images {
		fmt.Fprintf(sb, "Url  : %s\n", img.URL)
	}
}

// writeEntities writes the web entities section.
func (w *TextWriter) writeEntities(sb *strings.Builder, entities []model.WebEntity) {
	if len(entities) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%d Web entities found: \n", len(entities))
	for _, entity := range entities {
		fmt.Fprintf(sb, "Score      : %s\n", FormatScore(entity.Score))
		fmt.Fprintf(sb, "Description: %s\n", entity.Description)
	}
}

// FormatScore formats a score in its shortest round-trip decimal form,
// always with a decimal point (1 -> "1.0", 0.5 -> "0.5").
// Scores with a decimal exponent below -4 or at least 16 use exponent
// form instead (0.00001234 -> "1.234e-05", 1e16 -> "1e+16").
func FormatScore(score float64) string {
	if !math.IsInf(score, 0) && !math.IsNaN(score) {
		e := strconv.FormatFloat(score, 'e', -1, 64)
		if exp, err := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}

	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
