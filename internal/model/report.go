package model

import "time"

// ResourceInfo describes one downloaded image resource.
type ResourceInfo struct {
	// URLPath is the resource path relative to the site base URL.
	URLPath string `json:"url_path"`

	// LocalPath is the path of the downloaded file relative to the
	// output directory. \includegraphics references resolve against it.
	LocalPath string `json:"local_path"`

	// FrameCount is the number of animation frames. It is 1 for still
	// images and for single-frame GIFs.
	FrameCount int `json:"frame_count"`
}

// BuildReport is the accumulated state of one fetch or render invocation.
// Pipeline steps fill it in sequence: discovery records the problem IDs,
// fetching and extraction populate the problems, the later stages record
// appendices, resources, and output artifacts.
//
// Design decision: We thread a single mutable report through the pipeline
// rather than passing stage-specific values between steps. Each step only
// appends to it, the step ordering is fixed, and the final report doubles
// as the input to the build summary writer.
type BuildReport struct {
	// Variant is the layout mode for this build.
	Variant Variant `json:"variant"`

	// StartedAt is the timestamp when the invocation began.
	StartedAt time.Time `json:"started_at"`

	// ProblemIDs lists the problem numbers selected for this build,
	// ascending. Populated by the discovery step.
	ProblemIDs []int `json:"problem_ids"`

	// FetchedPages counts problem pages that required network I/O
	// (cache misses). Cache hits are not counted.
	FetchedPages int `json:"fetched_pages"`

	// Problems holds the extracted problems in ascending ID order.
	Problems []*Problem `json:"problems,omitempty"`

	// Appendices holds the extracted about pages in the order their
	// references were first encountered.
	Appendices []*AppendixPage `json:"appendices,omitempty"`

	// Resources lists the downloaded image resources.
	Resources []ResourceInfo `json:"resources,omitempty"`

	// EmbeddedFiles lists the data files written to the output root
	// for PDF embedding.
	EmbeddedFiles []string `json:"embedded_files,omitempty"`

	// TexPath is the assembled document source path, once written.
	TexPath string `json:"tex_path,omitempty"`

	// PDFPath is the rendered document path, when --pdf was requested.
	PDFPath string `json:"pdf_path,omitempty"`

	// RenderPasses is the number of typesetting passes performed.
	RenderPasses int `json:"render_passes,omitempty"`

	// Duration is the total wall-clock time of the invocation.
	Duration time.Duration `json:"duration"`
}

// NewBuildReport creates a BuildReport for the given variant with the
// start time set to now.
func NewBuildReport(variant Variant) *BuildReport {
	return &BuildReport{
		Variant:   variant,
		StartedAt: time.Now(),
	}
}

// ProblemCount returns the number of extracted problems.
func (r *BuildReport) ProblemCount() int {
	return len(r.Problems)
}

// AttachmentCount returns the total number of attachments across all
// extracted problems.
func (r *BuildReport) AttachmentCount() int {
	var n int
	for _, p := range r.Problems {
		n += len(p.Attachments)
	}
	return n
}
