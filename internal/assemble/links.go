package assemble

import (
	"path"
	"regexp"
	"strings"
)

// Link targets left verbatim by the converter and resolved here once the
// whole document exists and every \label target is known.
var (
	dataFileRe = regexp.MustCompile(`\\href{([^}]*\.txt)}{([^{}]*)}`)
	problemRe  = regexp.MustCompile(`\\href{problem=(\d+)}{([^{}]*)}`)
	aboutRe    = regexp.MustCompile(`\\href{(about=[^}]+)}{([^{}]*)}`)

	// The site's download hint reads oddly in a document that embeds the
	// file, so it is dropped.
	saveHintRe = regexp.MustCompile(`\s*\(right click and '[^']*'\)[,;]?`)

	urlUnescaper = strings.NewReplacer(`\%`, `%`, `\#`, `#`)
)

// resolveLinks rewrites statement link references for the offline document:
// data file links become embedded file attachments with a source footnote,
// and problem and about links become internal cross references.
func resolveLinks(body, base string) string {
	body = saveHintRe.ReplaceAllString(body, "")

	body = dataFileRe.ReplaceAllStringFunc(body, func(m string) string {
		parts := dataFileRe.FindStringSubmatch(m)
		urlPath := urlUnescaper.Replace(parts[1])
		label := parts[2]
		return `\textattachfile[color=linkcolor]{` + path.Base(urlPath) + `}{` + label +
			`}\footnote{Source: \url{` + base + urlPath + `}}`
	})

	body = problemRe.ReplaceAllString(body, `\hyperref[sec:problem_$1]{$2}`)
	body = aboutRe.ReplaceAllString(body, `\hyperref[sec:$1]{$2}`)

	return body
}
