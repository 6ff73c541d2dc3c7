package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/pveierland/project-euler-offline/internal/model"
)

// MarkdownWriter outputs build summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the build summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.BuildReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeArtifacts(md, report)
	w.writeResources(md, report)
	w.writeEmbeddedFiles(md, report)
	w.writeAppendices(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with build information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.BuildReport) {
	md.H1("Project Euler Offline Build")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Variant", report.Variant.String()},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(time.Millisecond).String()},
			{"Problems", strconv.Itoa(report.ProblemCount())},
			{"Pages Fetched", strconv.Itoa(report.FetchedPages)},
			{"Attachments", strconv.Itoa(report.AttachmentCount())},
			{"Appendices", strconv.Itoa(len(report.Appendices))},
		},
	})
	md.PlainText("")

	if report.FetchedPages == 0 && report.ProblemCount() > 0 {
		md.Tip("Every page was served from the local cache.")
		md.PlainText("")
	}
}

// writeArtifacts writes the produced file paths.
func (w *MarkdownWriter) writeArtifacts(md *markdown.Markdown, report *model.BuildReport) {
	if report.TexPath == "" && report.PDFPath == "" {
		return
	}

	md.H2("Artifacts")
	md.PlainText("")

	rows := [][]string{}
	if report.TexPath != "" {
		rows = append(rows, []string{"Document source", "`" + report.TexPath + "`"})
	}
	if report.PDFPath != "" {
		rows = append(rows, []string{"PDF", "`" + report.PDFPath + "`"})
		rows = append(rows, []string{"Typesetting passes", strconv.Itoa(report.RenderPasses)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Artifact", "Location"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeResources writes the downloaded image resources section.
func (w *MarkdownWriter) writeResources(md *markdown.Markdown, report *model.BuildReport) {
	if len(report.Resources) == 0 {
		return
	}

	md.H2("Image Resources")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Resources))
	for _, res := range report.Resources {
		rows = append(rows, []string{
			"`" + res.URLPath + "`",
			strconv.Itoa(res.FrameCount),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Resource", "Frames"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeEmbeddedFiles writes the embedded data files section.
func (w *MarkdownWriter) writeEmbeddedFiles(md *markdown.Markdown, report *model.BuildReport) {
	if len(report.EmbeddedFiles) == 0 {
		return
	}

	md.H2("Embedded Data Files")
	md.PlainText("")

	items := make([]string, 0, len(report.EmbeddedFiles))
	for _, name := range report.EmbeddedFiles {
		items = append(items, "`"+name+"`")
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeAppendices writes the appendix pages section.
func (w *MarkdownWriter) writeAppendices(md *markdown.Markdown, report *model.BuildReport) {
	if len(report.Appendices) == 0 {
		return
	}

	md.H2("Appendices")
	md.PlainText("")

	items := make([]string, 0, len(report.Appendices))
	for _, a := range report.Appendices {
		items = append(items, a.Title+" (`"+a.URLPath+"`)")
	}
	md.BulletList(items...)
	md.PlainText("")
}
