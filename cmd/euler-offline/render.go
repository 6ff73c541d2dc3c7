package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pveierland/project-euler-offline/internal/config"
	"github.com/pveierland/project-euler-offline/internal/fetch"
	"github.com/pveierland/project-euler-offline/internal/model"
	"github.com/pveierland/project-euler-offline/internal/pipeline"
	"github.com/pveierland/project-euler-offline/internal/render"
	"github.com/pveierland/project-euler-offline/internal/report"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Assemble the offline document from cached problems",
		Long: `Render extracts the cached problem statements, converts them to LaTeX,
and assembles them into a single document. With --pdf the document is
also typeset with the configured LaTeX engine.

Pages missing from the cache are fetched first, so a bare render on a
fresh machine performs the full download.

Examples:
  # Write project_euler_offline.tex for all published problems
  euler-offline render

  # Typeset a PDF with one problem per page
  euler-offline render --pdf --spaced

  # Render a selection into a custom directory
  euler-offline render --problems 1-50 --output build/

  # Write a markdown build summary alongside the document
  euler-offline render --pdf --report build-summary.md`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	cmd.Flags().Bool("pdf", false,
		"Typeset the assembled document to PDF")
	cmd.Flags().Bool("spaced", false,
		"Start every problem on a fresh page")
	cmd.Flags().StringP("problems", "p", "",
		"Problem selection, e.g. 1,5-10,42 (default: all published problems)")
	cmd.Flags().Bool("cache-only", false,
		"Forbid network access; fail on any cache miss")
	cmd.Flags().BoolP("force", "f", false,
		"Refetch pages even when cached")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent page fetches")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for the document and its resources")
	cmd.Flags().String("template", "",
		"Custom document template file (default: embedded template)")
	cmd.Flags().String("source-mods", "",
		"Directory of per-problem .tex files overriding extraction")
	cmd.Flags().String("engine", config.DefaultEngine,
		"LaTeX engine binary for --pdf")
	cmd.Flags().String("report", "",
		"Write a markdown build summary to the given file")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := renderConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	fetcher, cleanup, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	problems, err := selectedProblems(cfg)
	if err != nil {
		return err
	}
	opts := fetch.Options{CacheOnly: cfg.CacheOnly, Force: cfg.Force}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewDiscoverStep(fetcher, problems, opts, logger),
		pipeline.NewFetchStep(fetch.NewBatch(fetcher,
			fetch.WithBatchLimit(cfg.BatchSize),
			fetch.WithBatchLogger(logger)), fetcher, opts),
		pipeline.NewExtractStep(fetcher, opts, cfg.SourceModsDir, logger),
		pipeline.NewAppendixStep(fetcher, opts),
		pipeline.NewResourceStep(fetcher, opts, cfg.OutputDir, "", logger),
		pipeline.NewAssembleStep(cfg.TemplatePath, cfg.BaseURL, cfg.OutputDir),
	)
	if cfg.PDF {
		renderer := render.NewRenderer(
			render.WithEngine(cfg.Engine),
			render.WithMaxPasses(cfg.MaxRenderPasses),
			render.WithRenderLogger(logger),
		)
		p.AddStep(pipeline.NewRenderStep(renderer, cfg.OutputDir))
	}

	variant := model.VariantCompact
	if cfg.Spaced {
		variant = model.VariantSpaced
	}

	buildReport := model.NewBuildReport(variant)
	if err := p.Execute(ctx, buildReport); err != nil {
		return err
	}
	buildReport.Duration = time.Since(buildReport.StartedAt)

	return writeSummary(cfg, buildReport)
}

// writeSummary prints the terminal summary and writes the optional
// markdown build summary file.
func writeSummary(cfg *config.Config, buildReport *model.BuildReport) error {
	if _, err := report.NewSimpleWriter(os.Stdout).Write(buildReport); err != nil {
		return err
	}

	if cfg.ReportFile == "" {
		return nil
	}
	if dir := filepath.Dir(cfg.ReportFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(cfg.ReportFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewMarkdownWriter(f).Write(buildReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// renderConfig builds the configuration for the render command.
func renderConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	cfg.PDF, err = cmd.Flags().GetBool("pdf")
	if err != nil {
		return nil, err
	}
	cfg.Spaced, err = cmd.Flags().GetBool("spaced")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("problems") || cfg.Problems == "" {
		cfg.Problems, err = cmd.Flags().GetString("problems")
		if err != nil {
			return nil, err
		}
	}
	cfg.CacheOnly, err = cmd.Flags().GetBool("cache-only")
	if err != nil {
		return nil, err
	}
	cfg.Force, err = cmd.Flags().GetBool("force")
	if err != nil {
		return nil, err
	}
	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") || cfg.OutputDir == "" {
		cfg.OutputDir, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("template") {
		cfg.TemplatePath, err = cmd.Flags().GetString("template")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("source-mods") {
		cfg.SourceModsDir, err = cmd.Flags().GetString("source-mods")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("engine") || cfg.Engine == "" {
		cfg.Engine, err = cmd.Flags().GetString("engine")
		if err != nil {
			return nil, err
		}
	}
	cfg.ReportFile, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
