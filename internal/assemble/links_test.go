package assemble

import (
	"strings"
	"testing"
)

// TestResolveLinks tests statement link rewriting for the offline document.
func TestResolveLinks(t *testing.T) {
	t.Parallel()

	t.Run("data file link becomes an attachment", func(t *testing.T) {
		t.Parallel()

		in := `Using \href{resources/documents/0022_names.txt}{names.txt}, begin by sorting.`
		got := resolveLinks(in, "https://projecteuler.net/")

		want := `\textattachfile[color=linkcolor]{0022_names.txt}{names.txt}` +
			`\footnote{Source: \url{https://projecteuler.net/resources/documents/0022_names.txt}}`
		if !strings.Contains(got, want) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("download hint is dropped", func(t *testing.T) {
		t.Parallel()

		in := `\href{resources/documents/0022_names.txt}{names.txt} (right click and 'Save Link/Target As...'), a 46K text file`
		got := resolveLinks(in, "https://projecteuler.net/")

		if strings.Contains(got, "right click") {
			t.Errorf("hint not dropped: %q", got)
		}
		if !strings.Contains(got, " a 46K text file") {
			t.Errorf("surrounding text damaged: %q", got)
		}
	})

	t.Run("problem link becomes a cross reference", func(t *testing.T) {
		t.Parallel()

		got := resolveLinks(`as in \href{problem=42}{problem 42} before`, "https://projecteuler.net/")
		if !strings.Contains(got, `\hyperref[sec:problem_42]{problem 42}`) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("about link becomes a cross reference", func(t *testing.T) {
		t.Parallel()

		got := resolveLinks(`see the \href{about=benchmark}{benchmark} notes`, "https://projecteuler.net/")
		if !strings.Contains(got, `\hyperref[sec:about=benchmark]{benchmark}`) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("external links stay as href", func(t *testing.T) {
		t.Parallel()

		in := `\href{https://en.wikipedia.org/wiki/Lattice_path}{lattice paths}`
		got := resolveLinks(in, "https://projecteuler.net/")
		if got != in {
			t.Errorf("external link rewritten: %q", got)
		}
	})

	t.Run("escaped url characters are unescaped in footnote", func(t *testing.T) {
		t.Parallel()

		got := resolveLinks(`\href{resources/documents/with\%20space.txt}{file}`, "https://example.test/")
		if !strings.Contains(got, `\url{https://example.test/resources/documents/with%20space.txt}`) {
			t.Errorf("got %q", got)
		}
	})
}
