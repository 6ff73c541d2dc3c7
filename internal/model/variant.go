package model

// Variant is the document layout mode. It affects only page-break insertion
// during assembly, never the statement content.
//
// Design decision: The two layouts are a closed set, so we model them as an
// iota enum rather than a boolean flag. This keeps call sites readable
// (VariantSpaced vs. "true") and leaves room for a String() used in logs
// and the build summary.
type Variant int

const (
	// VariantCompact flows problems continuously with no forced breaks.
	VariantCompact Variant = iota

	// VariantSpaced starts every problem (and appendix page) on a fresh
	// page by emitting a \newpage directive before it.
	VariantSpaced
)

// String returns a human-readable representation of the variant.
func (v Variant) String() string {
	switch v {
	case VariantCompact:
		return "compact"
	case VariantSpaced:
		return "spaced"
	default:
		return "unknown"
	}
}

// BuildName returns the artifact base name for the variant.
// The rendered document is written as <BuildName>.tex / <BuildName>.pdf.
func (v Variant) BuildName() string {
	if v == VariantSpaced {
		return "project_euler_offline_spaced"
	}
	return "project_euler_offline"
}
