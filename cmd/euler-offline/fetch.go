package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pveierland/project-euler-offline/internal/config"
	"github.com/pveierland/project-euler-offline/internal/fetch"
	"github.com/pveierland/project-euler-offline/internal/model"
	"github.com/pveierland/project-euler-offline/internal/pipeline"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download problem pages into the local cache",
		Long: `Fetch downloads problem pages from the site into the local cache.

Pages already cached are skipped, so re-running fetch only downloads
problems published since the last run. The cache is permanent: a page is
fetched at most once and later commands work entirely from disk.

Examples:
  # Cache every published problem
  euler-offline fetch

  # Cache a selection
  euler-offline fetch --problems 1-100,200

  # Verify the cache without network access
  euler-offline fetch --cache-only

  # Re-download pages, e.g. after a site correction
  euler-offline fetch --force --problems 42`,
		Args: cobra.NoArgs,
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("problems", "p", "",
		"Problem selection, e.g. 1,5-10,42 (default: all published problems)")
	cmd.Flags().Bool("cache-only", false,
		"Forbid network access; fail on any cache miss")
	cmd.Flags().BoolP("force", "f", false,
		"Refetch pages even when cached")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent page fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := fetchConfig(cmd)
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
	)

	buildReport := model.NewBuildReport(model.VariantCompact)
	if err := p.Execute(ctx, buildReport); err != nil {
		return err
	}
	buildReport.Duration = time.Since(buildReport.StartedAt)

	fmt.Fprintf(os.Stdout, "Fetched %d of %d pages (%d already cached) in %s\n",
		buildReport.FetchedPages,
		len(buildReport.ProblemIDs),
		len(buildReport.ProblemIDs)-buildReport.FetchedPages,
		buildReport.Duration.Round(time.Millisecond))
	return nil
}

// fetchConfig builds the configuration for the fetch command.
func fetchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
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
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// selectedProblems parses the problem selection expression, or returns nil
// for all published problems.
func selectedProblems(cfg *config.Config) ([]int, error) {
	if cfg.Problems == "" {
		return nil, nil
	}
	return config.ParseProblemRange(cfg.Problems)
}
