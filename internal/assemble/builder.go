package assemble

import (
	_ "embed"
	"errors"
	"sort"
	"strings"

	"github.com/pveierland/project-euler-offline/internal/latex"
	"github.com/pveierland/project-euler-offline/internal/model"
)

// Template slots replaced during assembly. Plain marker substitution is
// used instead of text/template because problem statements are full of
// braces and backslashes that collide with template syntax.
const (
	preambleSlot = "${preamble}"
	contentSlot  = "${content}"
)

//go:embed template.tex
var defaultTemplate string

var (
	// ErrNoContentSlot is returned when a custom template lacks the
	// ${content} slot.
	ErrNoContentSlot = errors.New("assemble: template has no ${content} slot")
)

// Options controls document assembly.
type Options struct {
	// Template is the document template text. Empty selects the embedded
	// default. A template must carry the ${content} slot; ${preamble} is
	// optional but custom colors are lost without it.
	Template string

	// BaseURL is the absolute site URL used in data file source
	// footnotes. Empty selects the public site.
	BaseURL string
}

// appendixSwitch opens the appendix block: sections become lettered and
// the title prefix changes accordingly.
const appendixSwitch = "\\appendix\n" +
	"\\titleformat{\\section}\n" +
	"  {\\color{titleblue}\\Large\\bfseries}\n" +
	"  {Appendix \\thesection:}{0.5em}{}\n\n"

// Assemble builds the complete LaTeX document for the given variant.
// Problems appear ascending by ID, appendix pages ascending by URL path.
// The spaced variant starts every problem and appendix on a fresh page.
func Assemble(problems []*model.Problem, appendices []*model.AppendixPage, variant model.Variant, opts Options) (string, error) {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = defaultTemplate
	}
	if !strings.Contains(tmpl, contentSlot) {
		return "", ErrNoContentSlot
	}

	sorted := make([]*model.Problem, len(problems))
	copy(sorted, problems)
	model.SortProblems(sorted)

	var content strings.Builder
	for _, p := range sorted {
		if variant == model.VariantSpaced {
			content.WriteString("\\newpage\n\n")
		}
		content.WriteString(p.LaTeX)
		content.WriteString("\n\n")
	}

	if len(appendices) > 0 {
		appSorted := make([]*model.AppendixPage, len(appendices))
		copy(appSorted, appendices)
		sort.Slice(appSorted, func(i, j int) bool {
			return appSorted[i].URLPath < appSorted[j].URLPath
		})

		content.WriteString(appendixSwitch)
		for _, a := range appSorted {
			if variant == model.VariantSpaced {
				content.WriteString("\\newpage\n\n")
			}
			content.WriteString(a.LaTeX)
			content.WriteString("\n\n")
		}
	}

	body := resolveLinks(strings.TrimRight(content.String(), "\n"), baseURL(opts))
	doc := strings.NewReplacer(
		preambleSlot, preamble(sorted),
		contentSlot, body,
	).Replace(tmpl)

	return latex.SubstituteUnicode(doc), nil
}

// preamble renders the \definecolor lines for every CSS color the
// statements use, sorted for stable output.
func preamble(problems []*model.Problem) string {
	colors := make(map[string]bool)
	for _, p := range problems {
		for _, hex := range p.Colors {
			colors[hex] = true
		}
	}
	if len(colors) == 0 {
		return ""
	}

	sorted := make([]string, 0, len(colors))
	for hex := range colors {
		sorted = append(sorted, hex)
	}
	sort.Strings(sorted)

	var sb strings.Builder
	for _, hex := range sorted {
		sb.WriteString(`\definecolor{` + latex.ColorName(hex) + `}{HTML}{` + hex + "}\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// DefaultBaseURL is the public site, used when no base URL is configured.
const DefaultBaseURL = "https://projecteuler.net/"

func baseURL(opts Options) string {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/"
}
