// Package main provides the entry point for the euler-offline CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pveierland/project-euler-offline/internal/cache"
	"github.com/pveierland/project-euler-offline/internal/config"
	"github.com/pveierland/project-euler-offline/internal/fetch"
)

// NewRootCmd creates the root command for euler-offline.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "euler-offline",
		Short: "Compile Project Euler problems into an offline document",
		Long: `euler-offline downloads Project Euler problem statements and compiles
them into a single LaTeX document, optionally typeset to PDF.

Every fetched page is cached permanently: a page is downloaded at most
once, and later runs work from the local cache. Use fetch to populate
the cache and render to produce the document.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("base-url", config.DefaultBaseURL,
		"Site base URL that problem and resource paths resolve against")
	cmd.PersistentFlags().String("cache-dir", "",
		"Page cache directory (default: XDG cache directory)")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .euler-offline in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig creates a Config from the persistent flags and the optional
// configuration file. Flag values set explicitly on the command line win
// over the configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load configuration file first so explicit flags can override it.
	// An explicitly specified file must exist; the default locations are
	// optional.
	explicit := cfg.ConfigFilePath != ""
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file.Apply(cfg)
	} else if explicit {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("base-url") || cfg.BaseURL == "" {
		cfg.BaseURL, err = cmd.Flags().GetString("base-url")
		if err != nil {
			return nil, err
		}
	}
	if cacheDir, err := cmd.Flags().GetString("cache-dir"); err == nil && cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newFetcher builds the fetcher stack from the configuration: HTTP client,
// file cache store, and the fetch index database. The returned cleanup
// closes the index.
//
// Design decision: An unavailable index degrades to a warning rather than
// failing the run. The file store alone is authoritative for cache
// membership; the index only records fetch history for inspection.
func newFetcher(cfg *config.Config, logger *slog.Logger) (*fetch.Fetcher, func(), error) {
	store, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	opts := []fetch.FetcherOption{fetch.WithLogger(logger)}
	cleanup := func() {}

	index, err := cache.OpenIndex(config.XDGDataDir())
	if err != nil {
		logger.Warn("fetch index unavailable", "error", err)
	} else {
		opts = append(opts, fetch.WithIndex(index))
		cleanup = func() {
			if err := index.Close(); err != nil {
				logger.Warn("failed to close fetch index", "error", err)
			}
		}
	}

	return fetch.NewFetcher(client, store, cfg.BaseURL, opts...), cleanup, nil
}
