package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/pveierland/project-euler-offline/internal/latex"
	"github.com/pveierland/project-euler-offline/internal/model"
)

// titleRe matches problem page titles, e.g.
// "#42 Coded triangle numbers - Project Euler".
var titleRe = regexp.MustCompile(`^#(\d+)\s+(.*?) - Project Euler$`)

// Extract parses a fetched problem page into a Problem model.
// Extraction is all or nothing: any failure returns a typed *Error and no
// partial model.
func Extract(problemID int, page []byte) (*model.Problem, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, &Error{ProblemID: problemID, Err: err}
	}

	title, id, err := pageTitle(doc)
	if err != nil {
		return nil, &Error{ProblemID: problemID, Err: err}
	}
	if id != problemID {
		return nil, &Error{
			ProblemID: problemID,
			Err:       fmt.Errorf("%w: page is for problem %d", ErrIDMismatch, id),
		}
	}

	content := findByClass(doc, "problem_content")
	if content == nil {
		return nil, &Error{ProblemID: problemID, Err: ErrNoContent}
	}

	shield := &mathShield{}
	content, err = shieldNode(content, shield)
	if err != nil {
		return nil, &Error{ProblemID: problemID, Err: err}
	}

	res, err := latex.Convert(content)
	if err != nil {
		return nil, &Error{ProblemID: problemID, Err: err}
	}
	statement := shield.Restore(res.LaTeX)

	return &model.Problem{
		ID:          problemID,
		Title:       title,
		LaTeX:       sectionHeader(problemID, title) + statement,
		Attachments: findAttachments(statement),
		Colors:      res.Colors,
	}, nil
}

// sectionHeader renders a problem's section opening. The section counter
// is forced to the problem number so headings read "Problem N" even for
// sparse selections.
func sectionHeader(problemID int, title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\\setcounter{section}{%d}\n", problemID-1)
	fmt.Fprintf(&sb, "\\section{%s}\n", latex.Escape(title))
	fmt.Fprintf(&sb, "\\label{sec:problem_%d}\n\n", problemID)
	return sb.String()
}

// ApplyOverride replaces a problem's statement body with hand-maintained
// markup, keeping the generated section header and label. Attachment
// discovery reruns against the new body; converter-derived colors no
// longer apply, since override markup uses standard LaTeX colors directly.
func ApplyOverride(p *model.Problem, body string) {
	body = strings.TrimSpace(body)
	p.LaTeX = sectionHeader(p.ID, p.Title) + body
	p.Attachments = findAttachments(body)
	p.Colors = nil
}

// ExtractAbout parses a fetched about page (e.g. "about=benchmark") into
// an appendix section. The page heading becomes the section title with its
// "About" prefix stripped.
func ExtractAbout(urlPath string, page []byte) (*model.AppendixPage, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, &Error{URLPath: urlPath, Err: err}
	}

	container := findByID(doc, "about_page")
	if container == nil {
		container = findByClass(doc, "about_page")
	}
	if container == nil {
		return nil, &Error{URLPath: urlPath, Err: ErrNoContent}
	}

	shield := &mathShield{}
	container, err = shieldNode(container, shield)
	if err != nil {
		return nil, &Error{URLPath: urlPath, Err: err}
	}

	heading := firstHeading(container)
	if heading == nil {
		return nil, &Error{URLPath: urlPath, Err: ErrNoTitle}
	}
	title := strings.TrimSpace(nodeText(heading))
	title = strings.TrimPrefix(title, "About: ")
	title = strings.TrimPrefix(title, "About ")
	heading.Parent.RemoveChild(heading)

	res, err := latex.Convert(container)
	if err != nil {
		return nil, &Error{URLPath: urlPath, Err: err}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section{%s}\n", latex.Escape(title))
	fmt.Fprintf(&sb, "\\label{sec:%s}\n\n", urlPath)
	sb.WriteString(shield.Restore(res.LaTeX))

	return &model.AppendixPage{
		URLPath: urlPath,
		Title:   title,
		LaTeX:   sb.String(),
	}, nil
}

// LatestProblemID parses the recent-problems page and returns the highest
// problem number listed, which is the newest published problem.
func LatestProblemID(page []byte) (int, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return 0, &Error{URLPath: "recent", Err: err}
	}

	table := findByID(doc, "problems_table")
	if table == nil {
		return 0, &Error{URLPath: "recent", Err: ErrNoProblemsTable}
	}

	latest := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "td" && hasClass(n, "id_column") {
			if id, err := strconv.Atoi(strings.TrimSpace(nodeText(n))); err == nil && id > latest {
				latest = id
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	if latest == 0 {
		return 0, &Error{URLPath: "recent", Err: ErrNoProblemsTable}
	}
	return latest, nil
}

// pageTitle extracts the problem number and name from the page title.
func pageTitle(doc *html.Node) (title string, id int, err error) {
	node := findElement(doc, "title")
	if node == nil {
		return "", 0, ErrNoTitle
	}
	m := titleRe.FindStringSubmatch(strings.TrimSpace(nodeText(node)))
	if m == nil {
		return "", 0, ErrNoTitle
	}
	id, err = strconv.Atoi(m[1])
	if err != nil {
		return "", 0, ErrNoTitle
	}
	return m[2], id, nil
}

// shieldNode routes a content container through the math shield. The
// subtree is serialized, its math segments are hidden behind markers, and
// the result is parsed back so the converter only ever sees marker text.
// Shielding works on the container alone: stray dollar signs elsewhere in
// the page must not pair with statement math.
func shieldNode(n *html.Node, shield *mathShield) (*html.Node, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(shield.Hide(sb.String())))
	if err != nil {
		return nil, err
	}
	body := findElement(doc, "body")
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				return c, nil
			}
		}
	}
	return nil, ErrNoContent
}

// Attachment references in converted statement markup.
var (
	graphicsRe    = regexp.MustCompile(`\\includegraphics{([^}]+)}`)
	hrefRe        = regexp.MustCompile(`\\href{([^}]+)}`)
	urlUnreplacer = strings.NewReplacer(`\%`, `%`, `\#`, `#`)
)

// findAttachments discovers the remote assets a statement references, in
// document order and without duplicates.
func findAttachments(statement string) []model.Attachment {
	var attachments []model.Attachment
	seen := make(map[string]bool)
	add := func(kind model.AttachmentKind, urlPath string) {
		if seen[urlPath] {
			return
		}
		seen[urlPath] = true
		attachments = append(attachments, model.Attachment{Kind: kind, URLPath: urlPath})
	}

	for _, m := range graphicsRe.FindAllStringSubmatch(statement, -1) {
		add(model.AttachmentImage, urlUnreplacer.Replace(m[1]))
	}
	for _, m := range hrefRe.FindAllStringSubmatch(statement, -1) {
		target := urlUnreplacer.Replace(m[1])
		switch {
		case strings.HasSuffix(target, ".txt"):
			add(model.AttachmentDataFile, target)
		case strings.HasPrefix(target, "about="):
			add(model.AttachmentAbout, target)
		}
	}
	return attachments
}

// findElement returns the first element with the given tag name, depth first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findByID returns the first element carrying the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// findByClass returns the first element carrying the given class.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// hasClass reports whether the element's class attribute contains class.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// firstHeading returns the first h1..h6 element under n.
func firstHeading(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && len(n.Data) == 2 && n.Data[0] == 'h' &&
		n.Data[1] >= '1' && n.Data[1] <= '6' {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstHeading(c); found != nil {
			return found
		}
	}
	return nil
}

// nodeText returns the concatenated text content of a subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
