package extract

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Embedded math delimiters, longest form first so display math is not
// split by the inline pattern.
var mathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\\\[.*?\\\]`),
	regexp.MustCompile(`(?s)\$\$.+?\$\$`),
	regexp.MustCompile(`(?s)\$[^$]+\$`),
}

// mathShield hides embedded math behind opaque alphanumeric markers so the
// HTML parser and the LaTeX escaping pass leave it untouched. The markers
// survive both stages byte for byte and are swapped back afterwards.
type mathShield struct {
	segments []string
}

func (m *mathShield) marker(i int) string {
	return fmt.Sprintf("EULERMATH%06dX", i)
}

// Hide replaces every math segment in a serialized HTML fragment with a
// marker.
func (m *mathShield) Hide(page string) string {
	for _, re := range mathPatterns {
		page = re.ReplaceAllStringFunc(page, func(segment string) string {
			m.segments = append(m.segments, segment)
			return m.marker(len(m.segments) - 1)
		})
	}
	return page
}

// Restore substitutes the hidden segments back into converted LaTeX.
// Segments were lifted from serialized HTML, so entity references inside
// them are decoded here.
func (m *mathShield) Restore(s string) string {
	for i, segment := range m.segments {
		s = strings.ReplaceAll(s, m.marker(i), html.UnescapeString(segment))
	}
	return s
}
