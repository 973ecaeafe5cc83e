package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/webdetect/internal/model"
)

// MarkdownWriter outputs results in Markdown format,
// one section with a table per populated list.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	result = orEmpty(result)
	md := markdown.NewMarkdown(w.output)

	md.H1("Web Detection Report")
	md.PlainText("")

	if result.IsEmpty() {
		md.Note("No matching pages, images or web entities were found.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	w.writePages(md, result.PagesWithMatchingImages)
	w.writeImages(md, "Full Matches", result.FullMatchingImages)
	w.writeImages(md, "Partial Matches", result.PartialMatchingImages)
	w.writeEntities(md, result.WebEntities)

	return len(md.String()), md.Build()
}

// writePages writes the pages with matching images section.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, pages []model.WebPage) {
	if len(pages) == 0 {
		return
	}

	rows := make([][]string, len(pages))
	for i, page := range pages {
		rows[i] = []string{strconv.Itoa(i + 1), escapeCell(page.URL)}
	}

	w.writeSection(md, "Pages with Matching Images", len(pages), []string{"#", "URL"}, rows)
}

// writeImages writes a full or partial matches section.
func (w *MarkdownWriter) writeImages(md *markdown.Markdown, title string, images []model.WebImage) {
	if len(images) == 0 {
		return
	}

	rows := make([][]string, len(images))
	for i, img := range images {
		rows[i] = []string{strconv.Itoa(i + 1), escapeCell(img.URL)}
	}

	w.writeSection(md, title, len(images), []string{"#", "URL"}, rows)
}

// writeEntities writes the web entities section.
func (w *MarkdownWriter) writeEntities(md *markdown.Markdown, entities []model.WebEntity) {
	if len(entities) == 0 {
		return
	}

	rows := make([][]string, len(entities))
	for i, entity := range entities {
		description := entity.Description
		if description == "" {
			description = "-"
		}
		rows[i] = []string{strconv.Itoa(i + 1), FormatScore(entity.Score), escapeCell(description)}
	}

	w.writeSection(md, "Web Entities", len(entities), []string{"#", "Score", "Description"}, rows)
}

// writeSection writes a heading with the entry count followed by a table.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, title string, count int, header []string, rows [][]string) {
	md.H2(fmt.Sprintf("%s (%d)", title, count))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// escapeCell keeps pipe characters from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
