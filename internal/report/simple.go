package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pveierland/project-euler-offline/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the build summary in human-readable format.
func (w *SimpleWriter) Write(report *model.BuildReport) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Build complete (%s variant)\n", report.Variant)
	fmt.Fprintf(&sb, "  problems:      %d\n", report.ProblemCount())
	fmt.Fprintf(&sb, "  pages fetched: %d\n", report.FetchedPages)
	fmt.Fprintf(&sb, "  appendices:    %d\n", len(report.Appendices))
	if report.TexPath != "" {
		fmt.Fprintf(&sb, "  document:      %s\n", report.TexPath)
	}
	if report.PDFPath != "" {
		fmt.Fprintf(&sb, "  pdf:           %s (%d passes)\n", report.PDFPath, report.RenderPasses)
	}
	fmt.Fprintf(&sb, "  duration:      %s\n", report.Duration.Round(time.Millisecond))

	if w.verbose {
		w.writeDetails(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeDetails appends per-resource detail lines.
func (w *SimpleWriter) writeDetails(sb *strings.Builder, report *model.BuildReport) {
	if len(report.Resources) > 0 {
		fmt.Fprintf(sb, "  resources:\n")
		for _, res := range report.Resources {
			fmt.Fprintf(sb, "    %s (%d frames)\n", res.URLPath, res.FrameCount)
		}
	}
	if len(report.EmbeddedFiles) > 0 {
		fmt.Fprintf(sb, "  embedded files:\n")
		for _, name := range report.EmbeddedFiles {
			fmt.Fprintf(sb, "    %s\n", name)
		}
	}
}
