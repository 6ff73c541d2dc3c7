package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// Result describes a completed typesetting run.
type Result struct {
	// TexPath is the document source written into the output directory.
	TexPath string

	// PDFPath is the typeset document.
	PDFPath string

	// Passes is the number of engine invocations performed.
	Passes int
}

// Renderer drives the external typesetting engine.
type Renderer struct {
	engine    string
	maxPasses int
	logger    *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine selects the typesetting engine binary.
func WithEngine(engine string) RendererOption {
	return func(r *Renderer) {
		if engine != "" {
			r.engine = engine
		}
	}
}

// WithMaxPasses bounds the number of engine invocations per document.
func WithMaxPasses(n int) RendererOption {
	return func(r *Renderer) {
		if n > 0 {
			r.maxPasses = n
		}
	}
}

// WithRenderLogger sets the logger for engine pass progress.
func WithRenderLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer. Defaults: pdflatex, three passes.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		engine:    "pdflatex",
		maxPasses: 3,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WriteDocument writes the assembled document as <buildName>.tex in the
// output directory and returns its path. Rendering a PDF is a separate
// step; a .tex file alone is a valid end product.
func WriteDocument(outputDir, buildName, document string) (string, error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", fmt.Errorf("render: create output dir: %w", err)
	}
	texPath := filepath.Join(outputDir, buildName+".tex")
	if err := os.WriteFile(texPath, []byte(document), 0640); err != nil {
		return "", fmt.Errorf("render: write document: %w", err)
	}
	return texPath, nil
}

// Render typesets <buildName>.tex in the output directory. The engine runs
// repeatedly until the auxiliary file stops changing, meaning cross
// references and the table of contents have settled, or until the pass
// bound is reached. The first failing pass aborts the run.
func (r *Renderer) Render(ctx context.Context, outputDir, buildName string) (*Result, error) {
	if _, err := exec.LookPath(r.engine); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, r.engine)
	}

	texName := buildName + ".tex"
	auxPath := filepath.Join(outputDir, buildName+".aux")

	prevAux := auxDigest(auxPath)
	passes := 0
	for pass := 1; pass <= r.maxPasses; pass++ {
		r.logger.Debug("typesetting pass",
			slog.String("engine", r.engine),
			slog.Int("pass", pass),
			slog.String("document", texName))

		cmd := exec.CommandContext(ctx, r.engine,
			"-interaction=nonstopmode", "-halt-on-error", texName)
		cmd.Dir = outputDir

		output, err := cmd.CombinedOutput()
		if err != nil {
			return nil, commandError(cmd.Args, output, err)
		}
		passes = pass

		aux := auxDigest(auxPath)
		if aux == prevAux {
			break
		}
		prevAux = aux
	}

	pdfPath := filepath.Join(outputDir, buildName+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("%w: expected %s", ErrNoPDF, pdfPath)
	}

	return &Result{
		TexPath: filepath.Join(outputDir, texName),
		PDFPath: pdfPath,
		Passes:  passes,
	}, nil
}

// auxDigest hashes the auxiliary file. A missing file hashes to the empty
// digest, so the first pass never looks stable by accident unless the
// document produces no aux file at all.
func auxDigest(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
