package model

import "sort"

// AttachmentKind classifies a remote asset referenced by a problem statement.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and switch statements. The String() method
// provides human-readable output when needed.
type AttachmentKind int

const (
	// AttachmentImage is an image referenced by \includegraphics.
	// Images are downloaded into the output tree so the typesetting engine
	// can resolve them by relative path.
	AttachmentImage AttachmentKind = iota

	// AttachmentDataFile is a .txt data file linked from a statement
	// (e.g. names.txt for the names scores problem). Data files are
	// embedded into the final PDF via \textattachfile.
	AttachmentDataFile

	// AttachmentAbout is a link to one of the site's "about" pages
	// (e.g. about=benchmark). About pages become appendix sections.
	AttachmentAbout
)

// String returns a human-readable representation of the attachment kind.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentImage:
		return "image"
	case AttachmentDataFile:
		return "datafile"
	case AttachmentAbout:
		return "about"
	default:
		return "unknown"
	}
}

// Attachment is a remote asset referenced by a problem statement.
// URLPath is relative to the site base URL, exactly as it appears in the
// statement markup (e.g. "resources/documents/0022_names.txt").
type Attachment struct {
	// Kind classifies how the asset is used in the document.
	Kind AttachmentKind `json:"kind"`

	// URLPath is the asset path relative to the site base URL.
	URLPath string `json:"url_path"`
}

// Problem is one extracted problem statement ready for typesetting.
// It is created by the extract package from cached HTML and is immutable
// once built; the assemble package only reads it.
//
// Design decision: The statement is stored as finished LaTeX rather than an
// intermediate tree. Conversion happens exactly once per problem during
// extraction, and assembly reduces to deterministic string concatenation,
// which keeps the assembler a pure function.
type Problem struct {
	// ID is the problem number. Identity: no two problems share an ID.
	ID int `json:"id"`

	// Title is the problem name from the page title, without the
	// "#N" prefix and " - Project Euler" suffix.
	Title string `json:"title"`

	// LaTeX is the full statement markup including the section header
	// and label. It still contains raw \href/\includegraphics references;
	// the assembler resolves them during final document generation.
	LaTeX string `json:"-"`

	// Attachments lists the remote assets referenced by the statement,
	// in document order.
	Attachments []Attachment `json:"attachments,omitempty"`

	// Colors holds the six-digit uppercase hex values of CSS colors used
	// by the statement. The assembler emits one \definecolor per distinct
	// value into the document preamble.
	Colors []string `json:"colors,omitempty"`
}

// AppendixPage is an extracted "about" page rendered as an appendix section.
type AppendixPage struct {
	// URLPath is the about page path (e.g. "about=benchmark").
	// It doubles as the \label target for internal links.
	URLPath string `json:"url_path"`

	// Title is the page heading with the "About..." prefix stripped.
	Title string `json:"title"`

	// LaTeX is the full appendix section markup.
	LaTeX string `json:"-"`
}

// SortProblems orders problems ascending by ID in place.
// Presentation order in the document is always ascending by problem number.
func SortProblems(problems []*Problem) {
	sort.Slice(problems, func(i, j int) bool {
		return problems[i].ID < problems[j].ID
	})
}
