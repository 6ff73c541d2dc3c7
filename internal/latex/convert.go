package latex

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Result contains the converted LaTeX fragment and the CSS colors it uses.
type Result struct {
	// LaTeX is the converted markup with no leading or trailing blank lines.
	LaTeX string

	// Colors lists the six-digit uppercase hex values of CSS colors used
	// by the fragment, sorted. Each needs a \definecolor in the document
	// preamble under the name ColorName(hex).
	Colors []string
}

// Convert translates an HTML subtree into LaTeX markup.
func Convert(n *html.Node) (*Result, error) {
	c := &converter{
		sb:     &strings.Builder{},
		colors: make(map[string]bool),
	}
	c.children(n)

	colors := make([]string, 0, len(c.colors))
	for hex := range c.colors {
		colors = append(colors, hex)
	}
	sort.Strings(colors)

	return &Result{
		LaTeX:  normalizeBlankLines(c.sb.String()),
		Colors: colors,
	}, nil
}

// converter walks the HTML tree and accumulates LaTeX output.
type converter struct {
	sb       *strings.Builder
	colors   map[string]bool
	verbatim bool
}

// children converts all child nodes of n.
func (c *converter) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.node(child)
	}
}

// node dispatches on node type. Comments and other non-content nodes are
// dropped.
func (c *converter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
	case html.ElementNode:
		c.element(n)
	}
}

// blockElements are elements that break the inline flow and get blank-line
// separation in the output.
var blockElements = map[string]bool{
	"p": true, "div": true, "blockquote": true,
	"ul": true, "ol": true, "table": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// element converts a single element node.
func (c *converter) element(n *html.Node) {
	if blockElements[n.Data] {
		c.blockElement(n)
		return
	}

	switch n.Data {
	case "script", "style":
		// Non-content.
	case "br":
		c.sb.WriteString("\\\\\n")
	case "img":
		c.writeGraphics(n)
	case "a":
		c.writeLink(n)
	case "b", "strong":
		c.wrapInline(n, `\textbf{`, `}`)
	case "i", "em", "var", "dfn":
		c.wrapInline(n, `\textit{`, `}`)
	case "u":
		c.wrapInline(n, `\underline{`, `}`)
	case "tt", "code", "kbd", "samp":
		c.wrapInline(n, `\texttt{`, `}`)
	case "sub":
		c.wrapInline(n, `\textsubscript{`, `}`)
	case "sup":
		c.wrapInline(n, `\textsuperscript{`, `}`)
	case "span":
		pre, post := c.inlineWrappers(n)
		c.wrapInline(n, pre, post)
	default:
		// Unknown elements contribute their content only.
		c.children(n)
	}
}

// blockElement converts a block-level element with blank-line separation.
func (c *converter) blockElement(n *html.Node) {
	c.breakParagraph()

	switch n.Data {
	case "p", "div":
		if img := soloImage(n); img != nil {
			// A paragraph holding nothing but an image is displayed
			// centered, matching how the site renders illustrations.
			c.sb.WriteString("\\begin{center}\n")
			c.writeGraphics(img)
			c.sb.WriteString("\n\\end{center}")
			break
		}
		blockPre, blockPost := blockWrappers(n)
		inlinePre, inlinePost := c.inlineWrappers(n)
		c.sb.WriteString(blockPre)
		c.sb.WriteString(inlinePre)
		c.children(n)
		c.sb.WriteString(inlinePost)
		c.sb.WriteString(blockPost)
	case "blockquote":
		c.sb.WriteString("\\begin{quote}\n")
		c.children(n)
		c.breakParagraph()
		c.sb.WriteString("\\end{quote}")
	case "ul":
		c.writeList(n, "itemize")
	case "ol":
		c.writeList(n, "enumerate")
	case "table":
		c.writeTable(n)
	case "pre":
		c.sb.WriteString("\\begin{verbatim}\n")
		c.verbatim = true
		c.children(n)
		c.verbatim = false
		c.sb.WriteString("\n\\end{verbatim}")
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.wrapInline(n, `\subsection*{`, `}`)
	}

	c.breakParagraph()
}

// text writes a text node, collapsing whitespace runs. Inside verbatim
// blocks the text passes through untouched.
func (c *converter) text(s string) {
	if c.verbatim {
		c.sb.WriteString(s)
		return
	}

	collapsed := collapseWhitespace(s)
	if collapsed == "" {
		return
	}
	if collapsed == " " {
		out := c.sb.String()
		if out == "" || strings.HasSuffix(out, "\n") || strings.HasSuffix(out, " ") {
			return
		}
	}
	c.sb.WriteString(Escape(collapsed))
}

// wrapInline writes pre, the element's converted children, then post.
func (c *converter) wrapInline(n *html.Node, pre, post string) {
	c.sb.WriteString(pre)
	c.children(n)
	c.sb.WriteString(post)
}

// writeGraphics emits an \includegraphics reference for an img element.
// The source path is kept verbatim; the resource stage downloads it and
// the assembler may rewrite it for animations.
func (c *converter) writeGraphics(n *html.Node) {
	src := attr(n, "src")
	if src == "" {
		return
	}
	c.sb.WriteString(`\includegraphics{` + src + `}`)
}

// writeLink emits an \href for an anchor element. Internal targets
// (problem=N, about=X, data files) stay verbatim for the assembler's link
// resolution pass.
func (c *converter) writeLink(n *html.Node) {
	href := attr(n, "href")
	if href == "" {
		c.children(n)
		return
	}
	c.sb.WriteString(`\href{` + escapeURL(href) + `}{`)
	c.children(n)
	c.sb.WriteString(`}`)
}

// writeList emits an itemize or enumerate environment.
func (c *converter) writeList(n *html.Node, env string) {
	c.sb.WriteString("\\begin{" + env + "}\n")
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		c.sb.WriteString("\\item ")
		c.children(child)
		c.sb.WriteString("\n")
	}
	c.sb.WriteString("\\end{" + env + "}")
}

// writeTable emits a left-aligned tabular for a table element.
// The column count is the widest row; missing trailing cells are left
// empty, which LaTeX accepts.
func (c *converter) writeTable(n *html.Node) {
	var rows [][]string
	cols := 0

	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			switch child.Data {
			case "tr":
				row := c.tableRow(child)
				if len(row) > cols {
					cols = len(row)
				}
				rows = append(rows, row)
			case "thead", "tbody", "tfoot":
				walkRows(child)
			}
		}
	}
	walkRows(n)

	if cols == 0 {
		return
	}

	c.sb.WriteString("\\begin{tabular}{" + strings.Repeat("l", cols) + "}\n")
	for _, row := range rows {
		c.sb.WriteString(strings.Join(row, " & "))
		c.sb.WriteString("\\\\\n")
	}
	c.sb.WriteString("\\end{tabular}")
}

// tableRow converts the cells of one tr element.
func (c *converter) tableRow(tr *html.Node) []string {
	var cells []string
	for child := tr.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if child.Data != "td" && child.Data != "th" {
			continue
		}
		cell := c.capture(func() {
			c.children(child)
		})
		cells = append(cells, strings.TrimSpace(cell))
	}
	return cells
}

// capture runs f with a fresh output buffer and returns what it wrote.
func (c *converter) capture(f func()) string {
	saved := c.sb
	c.sb = &strings.Builder{}
	f()
	out := c.sb.String()
	c.sb = saved
	return out
}

// inlineWrappers collects the inline LaTeX wrappers for an element's
// classes and inline style. Synthetic color classes wrap the content in a
// \color group and register the hex value for the document preamble.
func (c *converter) inlineWrappers(n *html.Node) (pre, post string) {
	var pres []string
	var posts []string
	for _, class := range elementClasses(n) {
		if hex, ok := strings.CutPrefix(class, colorClassPrefix); ok {
			hex = expandHex(hex)
			c.colors[hex] = true
			pres = append(pres, `{\color{`+ColorName(hex)+`}`)
			posts = append([]string{`}`}, posts...)
			continue
		}
		if pair, ok := inlineStyles[class]; ok {
			pres = append(pres, pair.pre)
			posts = append([]string{pair.post}, posts...)
		}
	}
	return strings.Join(pres, ""), strings.Join(posts, "")
}

// blockWrappers collects the block-level LaTeX wrappers for an element's
// classes and inline style.
func blockWrappers(n *html.Node) (pre, post string) {
	var pres []string
	var posts []string
	for _, class := range elementClasses(n) {
		if pair, ok := blockStyles[class]; ok {
			pres = append(pres, pair.pre)
			posts = append([]string{pair.post}, posts...)
		}
	}
	return strings.Join(pres, ""), strings.Join(posts, "")
}

// elementClasses returns the element's class attribute entries plus the
// classes derived from its inline style.
func elementClasses(n *html.Node) []string {
	var classes []string
	if raw := attr(n, "class"); raw != "" {
		classes = append(classes, strings.Fields(raw)...)
	}
	classes = append(classes, classesFromStyle(attr(n, "style"))...)
	return classes
}

// soloImage returns the single img child of a block that contains nothing
// else, or nil.
func soloImage(n *html.Node) *html.Node {
	var img *html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if child.Data != "img" || img != nil {
				return nil
			}
			img = child
		}
	}
	return img
}

// attr returns the value of the named attribute, or empty string.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// breakParagraph ensures the output ends with exactly one blank line,
// separating the previous content from the next block.
func (c *converter) breakParagraph() {
	out := c.sb.String()
	if out == "" {
		return
	}
	trimmed := strings.TrimRight(out, " \n")
	if trimmed == "" {
		return
	}
	c.sb.Reset()
	c.sb.WriteString(trimmed)
	c.sb.WriteString("\n\n")
}

// escapeURL escapes the characters that break \href URL arguments.
var urlReplacer = strings.NewReplacer(`%`, `\%`, `#`, `\#`)

func escapeURL(u string) string {
	return urlReplacer.Replace(u)
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// collapseWhitespace reduces whitespace runs to single spaces while
// preserving a leading or trailing boundary space, which carries meaning
// between adjacent inline elements.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}

	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// normalizeBlankLines trims the fragment and collapses runs of blank lines.
func normalizeBlankLines(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, "\n\n"))
}
