package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pveierland/project-euler-offline/internal/assemble"
	"github.com/pveierland/project-euler-offline/internal/extract"
	"github.com/pveierland/project-euler-offline/internal/fetch"
	"github.com/pveierland/project-euler-offline/internal/model"
	"github.com/pveierland/project-euler-offline/internal/render"
)

// DiscoverStep determines which problems the build covers. An explicit
// selection is used as-is; otherwise the recent-problems page decides the
// upper bound and the build covers every published problem.
type DiscoverStep struct {
	// fetcher retrieves the recent-problems page when no explicit
	// selection exists.
	fetcher *fetch.Fetcher

	// problems is the explicit selection, ascending and deduplicated.
	// Empty means all published problems.
	problems []int

	// opts controls cache behavior for the discovery fetch.
	opts fetch.Options

	// logger for structured logging.
	logger *slog.Logger
}

// NewDiscoverStep creates a problem discovery step.
func NewDiscoverStep(fetcher *fetch.Fetcher, problems []int, opts fetch.Options, logger *slog.Logger) *DiscoverStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoverStep{fetcher: fetcher, problems: problems, opts: opts, logger: logger}
}

// Name returns the step's name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do fills in the report's problem selection.
//
// Design decision: Without an explicit selection the recent page is
// re-fetched on every run, because new problems appear weekly and a stale
// cached copy would silently pin the document to an old upper bound. Its
// first copy still lands in the cache so cache-only builds can resolve
// the upper bound from disk.
func (s *DiscoverStep) Do(ctx context.Context, report *model.BuildReport) error {
	if len(s.problems) > 0 {
		report.ProblemIDs = append([]int(nil), s.problems...)
		sort.Ints(report.ProblemIDs)
		return nil
	}

	opts := s.opts
	opts.Force = !opts.CacheOnly

	page, err := s.fetcher.Retrieve(ctx, "recent", opts)
	if err != nil {
		return fmt.Errorf("discover latest problem: %w", err)
	}
	latest, err := extract.LatestProblemID(page)
	if err != nil {
		return err
	}

	s.logger.Info("discovered latest problem", "latest", latest)

	ids := make([]int, 0, latest)
	for id := 1; id <= latest; id++ {
		ids = append(ids, id)
	}
	report.ProblemIDs = ids
	return nil
}

// FetchStep retrieves every selected problem page into the cache.
type FetchStep struct {
	// batch drives the page retrieval, optionally with bounded
	// concurrency.
	batch *fetch.Batch

	// fetcher is consulted for the network hit count after the run.
	fetcher *fetch.Fetcher

	// opts controls cache behavior.
	opts fetch.Options
}

// NewFetchStep creates a page retrieval step.
func NewFetchStep(batch *fetch.Batch, fetcher *fetch.Fetcher, opts fetch.Options) *FetchStep {
	return &FetchStep{batch: batch, fetcher: fetcher, opts: opts}
}

// Name returns the step's name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do retrieves the selected problem pages. The first failure aborts the
// whole run. Only this step's own network hits are reported; the
// discovery fetch of the recent page is not a problem page.
func (s *FetchStep) Do(ctx context.Context, report *model.BuildReport) error {
	before := s.fetcher.FetchedCount()
	if err := s.batch.FetchProblems(ctx, report.ProblemIDs, s.opts); err != nil {
		return err
	}
	report.FetchedPages = s.fetcher.FetchedCount() - before
	return nil
}

// ExtractStep parses every cached problem page into a Problem model and
// applies hand-maintained statement overrides where present.
type ExtractStep struct {
	// fetcher serves page bytes, from cache after FetchStep ran.
	fetcher *fetch.Fetcher

	// opts controls cache behavior.
	opts fetch.Options

	// sourceModsDir holds per-problem .tex override files, named by
	// problem number (0096.tex or 96.tex). Empty disables overrides.
	sourceModsDir string

	// logger for structured logging.
	logger *slog.Logger
}

// NewExtractStep creates a statement extraction step.
func NewExtractStep(fetcher *fetch.Fetcher, opts fetch.Options, sourceModsDir string, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{fetcher: fetcher, opts: opts, sourceModsDir: sourceModsDir, logger: logger}
}

// Name returns the step's name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts all selected problems in ascending ID order.
func (s *ExtractStep) Do(ctx context.Context, report *model.BuildReport) error {
	for _, id := range report.ProblemIDs {
		page, err := s.fetcher.Retrieve(ctx, fetch.ProblemPath(id), s.opts)
		if err != nil {
			return err
		}

		problem, err := extract.Extract(id, page)
		if err != nil {
			return err
		}

		if body, path, ok := s.override(id); ok {
			s.logger.Debug("applying statement override",
				"problem", id,
				"file", path)
			extract.ApplyOverride(problem, body)
		}

		report.Problems = append(report.Problems, problem)
	}

	model.SortProblems(report.Problems)
	return nil
}

// override loads the statement override file for a problem, if any.
func (s *ExtractStep) override(id int) (body, path string, ok bool) {
	if s.sourceModsDir == "" {
		return "", "", false
	}
	for _, name := range []string{fmt.Sprintf("%04d.tex", id), fmt.Sprintf("%d.tex", id)} {
		candidate := filepath.Join(s.sourceModsDir, name)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return string(data), candidate, true
	}
	return "", "", false
}

// AppendixStep fetches and extracts the about pages the statements link
// to. Appendices keep the order their references were first encountered;
// the assembler sorts them for the document.
type AppendixStep struct {
	// fetcher retrieves about pages.
	fetcher *fetch.Fetcher

	// opts controls cache behavior.
	opts fetch.Options
}

// NewAppendixStep creates an about page extraction step.
func NewAppendixStep(fetcher *fetch.Fetcher, opts fetch.Options) *AppendixStep {
	return &AppendixStep{fetcher: fetcher, opts: opts}
}

// Name returns the step's name.
func (s *AppendixStep) Name() string {
	return "appendix"
}

// Do extracts one appendix per distinct about reference.
func (s *AppendixStep) Do(ctx context.Context, report *model.BuildReport) error {
	seen := make(map[string]bool)
	for _, p := range report.Problems {
		for _, att := range p.Attachments {
			if att.Kind != model.AttachmentAbout || seen[att.URLPath] {
				continue
			}
			seen[att.URLPath] = true

			page, err := s.fetcher.Retrieve(ctx, att.URLPath, s.opts)
			if err != nil {
				return err
			}
			appendix, err := extract.ExtractAbout(att.URLPath, page)
			if err != nil {
				return err
			}
			report.Appendices = append(report.Appendices, appendix)
		}
	}
	return nil
}

// ResourceStep materializes the images and data files the document
// references into the output tree.
type ResourceStep struct {
	// fetcher retrieves resource bytes.
	fetcher *fetch.Fetcher

	// opts controls cache behavior.
	opts fetch.Options

	// outputDir is the document output directory.
	outputDir string

	// convertBin is the ImageMagick binary for GIF conversion, empty
	// for the default.
	convertBin string

	// logger for structured logging.
	logger *slog.Logger
}

// NewResourceStep creates a resource materialization step.
func NewResourceStep(fetcher *fetch.Fetcher, opts fetch.Options, outputDir, convertBin string, logger *slog.Logger) *ResourceStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResourceStep{
		fetcher:    fetcher,
		opts:       opts,
		outputDir:  outputDir,
		convertBin: convertBin,
		logger:     logger,
	}
}

// Name returns the step's name.
func (s *ResourceStep) Name() string {
	return "resources"
}

// Do downloads every referenced resource and records it in the report.
func (s *ResourceStep) Do(ctx context.Context, report *model.BuildReport) error {
	materializer := render.NewMaterializer(s.fetcher, s.outputDir,
		render.WithConvertBinary(s.convertBin),
		render.WithMaterializerLogger(s.logger))

	resources, embedded, err := materializer.MaterializeProblems(ctx, report.Problems, s.opts)
	if err != nil {
		return err
	}
	report.Resources = resources
	report.EmbeddedFiles = embedded
	return nil
}

// AssembleStep joins the extracted problems and appendices into the final
// LaTeX document and writes it into the output directory.
type AssembleStep struct {
	// templatePath selects a custom document template, empty for the
	// embedded default.
	templatePath string

	// baseURL feeds data file source footnotes.
	baseURL string

	// outputDir is the document output directory.
	outputDir string
}

// NewAssembleStep creates a document assembly step.
func NewAssembleStep(templatePath, baseURL, outputDir string) *AssembleStep {
	return &AssembleStep{templatePath: templatePath, baseURL: baseURL, outputDir: outputDir}
}

// Name returns the step's name.
func (s *AssembleStep) Name() string {
	return "assemble"
}

// Do assembles the document for the report's variant and writes the .tex
// file.
func (s *AssembleStep) Do(_ context.Context, report *model.BuildReport) error {
	var tmpl string
	if s.templatePath != "" {
		data, err := os.ReadFile(s.templatePath)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		tmpl = string(data)
	}

	doc, err := assemble.Assemble(report.Problems, report.Appendices, report.Variant, assemble.Options{
		Template: tmpl,
		BaseURL:  s.baseURL,
	})
	if err != nil {
		return err
	}

	texPath, err := render.WriteDocument(s.outputDir, report.Variant.BuildName(), doc)
	if err != nil {
		return err
	}
	report.TexPath = texPath
	return nil
}

// RenderStep typesets the assembled document into a PDF.
type RenderStep struct {
	// renderer drives the typesetting engine.
	renderer *render.Renderer

	// outputDir is the document output directory.
	outputDir string
}

// NewRenderStep creates a typesetting step.
func NewRenderStep(renderer *render.Renderer, outputDir string) *RenderStep {
	return &RenderStep{renderer: renderer, outputDir: outputDir}
}

// Name returns the step's name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do runs the typesetting engine and records the resulting PDF.
func (s *RenderStep) Do(ctx context.Context, report *model.BuildReport) error {
	result, err := s.renderer.Render(ctx, s.outputDir, report.Variant.BuildName())
	if err != nil {
		return err
	}
	report.PDFPath = result.PDFPath
	report.RenderPasses = result.Passes
	return nil
}
