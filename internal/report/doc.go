// Package report formats web detection results for output.
//
// This package contains writers for different output formats:
//   - TextWriter: the line-oriented report printed by the detect command
//   - JSONWriter: the four-key JSON payload also returned by the HTTP server
//   - MarkdownWriter: a Markdown report with one table per section
//
// No writer sorts, deduplicates or truncates entries: order is exactly the
// order returned by the remote service.
package report
