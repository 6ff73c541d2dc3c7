package assemble

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pveierland/project-euler-offline/internal/model"
)

func testProblem(id int, title string) *model.Problem {
	return &model.Problem{
		ID:    id,
		Title: title,
		LaTeX: fmt.Sprintf("\\setcounter{section}{%d}\n\\section{%s}\n\\label{sec:problem_%d}\n\nStatement %d.",
			id-1, title, id, id),
	}
}

// TestAssembleOrdering verifies problems appear ascending by ID regardless
// of input order, without mutating the caller's slice.
func TestAssembleOrdering(t *testing.T) {
	t.Parallel()

	problems := []*model.Problem{
		testProblem(3, "Largest prime factor"),
		testProblem(1, "Multiples of 3 or 5"),
		testProblem(2, "Even Fibonacci numbers"),
	}

	doc, err := Assemble(problems, nil, model.VariantCompact, Options{})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	i1 := strings.Index(doc, "\\label{sec:problem_1}")
	i2 := strings.Index(doc, "\\label{sec:problem_2}")
	i3 := strings.Index(doc, "\\label{sec:problem_3}")
	if i1 < 0 || i2 < 0 || i3 < 0 {
		t.Fatalf("missing problem labels in document")
	}
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("problems out of order: %d %d %d", i1, i2, i3)
	}

	if problems[0].ID != 3 {
		t.Errorf("input slice was reordered")
	}
}

// TestAssemblePurity verifies byte-identical output for identical input.
func TestAssemblePurity(t *testing.T) {
	t.Parallel()

	problems := []*model.Problem{
		testProblem(2, "Even Fibonacci numbers"),
		testProblem(1, "Multiples of 3 or 5"),
	}
	problems[0].Colors = []string{"DC143C", "0000FF"}
	appendices := []*model.AppendixPage{
		{URLPath: "about=benchmark", Title: "Benchmark", LaTeX: "\\section{Benchmark}\n\\label{sec:about=benchmark}\n\nNotes."},
	}

	first, err := Assemble(problems, appendices, model.VariantSpaced, Options{})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	for range 5 {
		again, err := Assemble(problems, appendices, model.VariantSpaced, Options{})
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		if again != first {
			t.Fatal("output differs between runs of identical input")
		}
	}
}

// TestAssembleVariants verifies the spaced variant adds exactly one page
// break per problem and appendix, placed before each.
func TestAssembleVariants(t *testing.T) {
	t.Parallel()

	problems := []*model.Problem{
		testProblem(1, "Multiples of 3 or 5"),
		testProblem(2, "Even Fibonacci numbers"),
		testProblem(3, "Largest prime factor"),
	}

	compact, err := Assemble(problems, nil, model.VariantCompact, Options{})
	if err != nil {
		t.Fatalf("Assemble compact failed: %v", err)
	}
	spaced, err := Assemble(problems, nil, model.VariantSpaced, Options{})
	if err != nil {
		t.Fatalf("Assemble spaced failed: %v", err)
	}

	diff := strings.Count(spaced, "\\newpage") - strings.Count(compact, "\\newpage")
	if diff != len(problems) {
		t.Errorf("spaced adds %d page breaks, want %d", diff, len(problems))
	}

	// Every problem starts on a fresh page; nothing follows the last one.
	for id := 1; id <= 3; id++ {
		marker := fmt.Sprintf("\\newpage\n\n\\setcounter{section}{%d}", id-1)
		if !strings.Contains(spaced, marker) {
			t.Errorf("problem %d does not start on a fresh page", id)
		}
	}
	if strings.Contains(spaced, "Statement 3.\n\n\\newpage") {
		t.Errorf("unexpected page break after the last problem")
	}
}

// TestAssemblePreamble verifies color definitions are emitted sorted and
// deduplicated.
func TestAssemblePreamble(t *testing.T) {
	t.Parallel()

	a := testProblem(1, "One")
	a.Colors = []string{"DC143C"}
	b := testProblem(2, "Two")
	b.Colors = []string{"0000FF", "DC143C"}

	doc, err := Assemble([]*model.Problem{a, b}, nil, model.VariantCompact, Options{})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	blue := strings.Index(doc, `\definecolor{CustomColor0000FF}{HTML}{0000FF}`)
	crimson := strings.Index(doc, `\definecolor{CustomColorDC143C}{HTML}{DC143C}`)
	if blue < 0 || crimson < 0 {
		t.Fatalf("missing color definitions:\n%s", doc)
	}
	if blue > crimson {
		t.Errorf("color definitions not sorted")
	}
	if strings.Count(doc, "CustomColorDC143C}{HTML}") != 1 {
		t.Errorf("duplicate color definition")
	}
}

// TestAssembleAppendix verifies appendix pages follow the problems behind
// an \appendix switch.
func TestAssembleAppendix(t *testing.T) {
	t.Parallel()

	problems := []*model.Problem{testProblem(1, "One")}
	appendices := []*model.AppendixPage{
		{URLPath: "about=euler", Title: "Euler", LaTeX: "\\section{Euler}\n\\label{sec:about=euler}\n\nBio."},
		{URLPath: "about=benchmark", Title: "Benchmark", LaTeX: "\\section{Benchmark}\n\\label{sec:about=benchmark}\n\nNotes."},
	}

	doc, err := Assemble(problems, appendices, model.VariantCompact, Options{})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	iProblem := strings.Index(doc, "\\label{sec:problem_1}")
	iSwitch := strings.Index(doc, "\\appendix")
	iBench := strings.Index(doc, "\\label{sec:about=benchmark}")
	iEuler := strings.Index(doc, "\\label{sec:about=euler}")
	if iProblem < 0 || iSwitch < 0 || iBench < 0 || iEuler < 0 {
		t.Fatalf("missing document parts")
	}
	if !(iProblem < iSwitch && iSwitch < iBench && iBench < iEuler) {
		t.Errorf("appendix block misplaced or unsorted: %d %d %d %d", iProblem, iSwitch, iBench, iEuler)
	}
}

// TestAssembleTemplate tests custom template handling.
func TestAssembleTemplate(t *testing.T) {
	t.Parallel()

	t.Run("custom template slots are filled", func(t *testing.T) {
		t.Parallel()

		p := testProblem(1, "One")
		p.Colors = []string{"DC143C"}
		tmpl := "HEAD\n${preamble}\nBODY\n${content}\nTAIL\n"

		doc, err := Assemble([]*model.Problem{p}, nil, model.VariantCompact, Options{Template: tmpl})
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		if !strings.HasPrefix(doc, "HEAD\n\\definecolor{CustomColorDC143C}") {
			t.Errorf("preamble slot not filled:\n%s", doc)
		}
		if !strings.Contains(doc, "BODY\n\\setcounter{section}{0}") {
			t.Errorf("content slot not filled:\n%s", doc)
		}
	})

	t.Run("template without content slot", func(t *testing.T) {
		t.Parallel()

		_, err := Assemble(nil, nil, model.VariantCompact, Options{Template: "just text"})
		if !errors.Is(err, ErrNoContentSlot) {
			t.Errorf("err = %v, want ErrNoContentSlot", err)
		}
	})
}
