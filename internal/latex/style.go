package latex

import (
	"regexp"
	"strings"
)

// stylePair is a LaTeX wrapper emitted around styled content.
type stylePair struct {
	pre  string
	post string
}

// inlineStyles maps the site's CSS class names to LaTeX wrappers.
// The class set is stable across the problem corpus; unknown classes are
// ignored rather than failing extraction.
var inlineStyles = map[string]stylePair{
	"blue":      {pre: `{\color{blue}`, post: `}`},
	"green":     {pre: `{\color{green}`, post: `}`},
	"italic":    {pre: `\textit{`, post: `}`},
	"larger":    {pre: `{\large{}`, post: `}`},
	"largest":   {pre: `{\Large{}`, post: `}`},
	"monospace": {pre: `\texttt{`, post: `}`},
	"orange":    {pre: `{\color{orange}`, post: `}`},
	"red":       {pre: `{\color{red}`, post: `}`},
	"smaller":   {pre: `{\small{}`, post: `}`},
	"smallest":  {pre: `{\footnotesize{}`, post: `}`},
	"strong":    {pre: `\textbf{`, post: `}`},
	"underline": {pre: `\underline{`, post: `}`},
}

// blockStyles maps block-level class names to LaTeX environments.
// margin_left content reads best centered on a fixed page, same as the
// center class.
var blockStyles = map[string]stylePair{
	"center":      {pre: "\\begin{center}\n", post: "\n\\end{center}"},
	"margin_left": {pre: "\\begin{center}\n", post: "\n\\end{center}"},
}

// Inline CSS declarations that map onto the class vocabulary above.
var (
	styleColorRe = regexp.MustCompile(`color:\s*#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})\b`)
	styleRules   = []struct {
		re    *regexp.Regexp
		class string
	}{
		{regexp.MustCompile(`font-family:[^;]*(courier new|monospace)`), "monospace"},
		{regexp.MustCompile(`font-size:\s*larger`), "larger"},
		{regexp.MustCompile(`font-size:\s*smaller`), "smaller"},
		{regexp.MustCompile(`font-style:\s*italic`), "italic"},
		{regexp.MustCompile(`font-weight:\s*bold`), "strong"},
		{regexp.MustCompile(`text-align:\s*center`), "center"},
		{regexp.MustCompile(`text-decoration:\s*underline`), "underline"},
	}
)

// colorClassPrefix marks synthetic classes derived from CSS color
// declarations. The suffix is the six-digit uppercase hex value.
const colorClassPrefix = "__COLOR__"

// classesFromStyle translates an inline style attribute into the class
// vocabulary. CSS colors become synthetic __COLOR__RRGGBB classes handled
// separately by the converter.
func classesFromStyle(style string) []string {
	if style == "" {
		return nil
	}
	lower := strings.ToLower(style)

	var classes []string
	if m := styleColorRe.FindStringSubmatch(lower); m != nil {
		classes = append(classes, colorClassPrefix+expandHex(m[1]))
	}
	for _, rule := range styleRules {
		if rule.re.MatchString(lower) {
			classes = append(classes, rule.class)
		}
	}
	return classes
}

// expandHex normalizes a CSS hex color to six uppercase digits.
func expandHex(hex string) string {
	hex = strings.ToUpper(hex)
	if len(hex) == 3 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	}
	return hex
}

// ColorName returns the \definecolor name used for a hex color value.
// Deriving the name from the value keeps document output independent of
// the order in which colors are encountered.
func ColorName(hex string) string {
	return "CustomColor" + expandHex(hex)
}
