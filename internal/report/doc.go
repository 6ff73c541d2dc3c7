// Package report provides build summary generation and output.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: Markdown output for documentation and sharing
//   - JSONWriter: Structured JSON output for tool integration
//
// Design decision: We separate summary writing from the report data
// structure (which is in the model package) to follow the single
// responsibility principle. This allows adding new output formats without
// modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
