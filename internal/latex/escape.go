package latex

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// specialReplacer escapes the characters LaTeX treats as syntax.
// Backslash first is irrelevant here because strings.Replacer matches the
// source string in one pass, never its own output.
var specialReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\^{}`,
	`~`, `\textasciitilde{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	`|`, `\textbar{}`,
)

// Escape renders plain text safe for LaTeX.
// It only handles LaTeX syntax characters; Unicode symbols are left alone
// and handled by SubstituteUnicode in a final document-level pass.
func Escape(s string) string {
	return specialReplacer.Replace(s)
}

// unicodeSubstitutions maps Unicode characters that commonly appear in
// problem statements to LaTeX commands the standard fonts can typeset.
// Math symbols go through \ensuremath so they work in both text and math
// mode; circled digits use the template's \circled macro.
var unicodeSubstitutions = strings.NewReplacer(
	"’", `\textquoteright{}`,
	"⌈", `\ensuremath{\lceil}`,
	"⌉", `\ensuremath{\rceil}`,
	"⌊", `\ensuremath{\lfloor}`,
	"⌋", `\ensuremath{\rfloor}`,
	"↔", `\ensuremath{\leftrightarrow}`,
	"∅", `\ensuremath{\emptyset}`,
	"∈", `\ensuremath{\in}`,
	"∑", `\ensuremath{\sum}`,
	"≠", `\ensuremath{\neq}`,
	"∩", `\ensuremath{\cap}`,
	"≈", `\ensuremath{\approx}`,
	"≡", `\ensuremath{\equiv}`,
	"≤", `\ensuremath{\leq}`,
	"≥", `\ensuremath{\geq}`,
	"⋅", `\ensuremath{\cdot}`,
	"①", `\circled{1}`,
	"②", `\circled{2}`,
	"③", `\circled{3}`,
	"④", `\circled{4}`,
	"⑤", `\circled{5}`,
	"⑥", `\circled{6}`,
	"⑦", `\circled{7}`,
	"⑧", `\circled{8}`,
	"⑨", `\circled{9}`,
	"⑩", `\circled{10}`,
	"⑪", `\circled{11}`,
	"ń", `\'{n}`,
	"μ", `\ensuremath{\mu}`,
	"π", `\ensuremath{\pi}`,
	"ω", `\ensuremath{\omega}`,
)

// SubstituteUnicode replaces known Unicode symbols with LaTeX commands.
// The input is NFC-normalized first so decomposed forms (e.g. n followed
// by a combining acute) match the composed entries in the table. It runs
// once over the fully assembled document rather than per fragment.
func SubstituteUnicode(s string) string {
	return unicodeSubstitutions.Replace(norm.NFC.String(s))
}
