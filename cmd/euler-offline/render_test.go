package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pveierland/project-euler-offline/internal/config"
	"github.com/pveierland/project-euler-offline/internal/model"
)

// TestNewRenderCmd tests the render command creation.
func TestNewRenderCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRenderCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "render" {
			t.Errorf("expected use 'render', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has pdf flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("pdf")
		if flag == nil {
			t.Fatal("expected pdf flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has spaced flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("spaced")
		if flag == nil {
			t.Fatal("expected spaced flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has problems flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("problems")
		if flag == nil {
			t.Fatal("expected problems flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue == "" {
			t.Error("expected non-empty default output directory")
		}
	})

	t.Run("has engine flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("engine")
		if flag == nil {
			t.Fatal("expected engine flag")
		}
		if flag.DefValue != "pdflatex" {
			t.Errorf("expected default 'pdflatex', got %q", flag.DefValue)
		}
	})

	t.Run("has template flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("template") == nil {
			t.Fatal("expected template flag")
		}
	})

	t.Run("has source-mods flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("source-mods") == nil {
			t.Fatal("expected source-mods flag")
		}
	})

	t.Run("has report flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("report") == nil {
			t.Fatal("expected report flag")
		}
	})

	t.Run("has cache-only flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("cache-only") == nil {
			t.Fatal("expected cache-only flag")
		}
	})
}

// TestRenderConfig tests config construction from render command flags.
func TestRenderConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"render"})
		if err != nil {
			t.Fatalf("failed to find render command: %v", err)
		}
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := renderConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PDF {
			t.Error("expected PDF to default to false")
		}
		if cfg.Spaced {
			t.Error("expected Spaced to default to false")
		}
		if cfg.OutputDir == "" {
			t.Error("expected non-empty default output directory")
		}
		if cfg.Engine != "pdflatex" {
			t.Errorf("expected default engine 'pdflatex', got %q", cfg.Engine)
		}
		if cfg.MaxRenderPasses <= 0 {
			t.Errorf("expected positive max render passes, got %d", cfg.MaxRenderPasses)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to validate, got %v", err)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"render"})
		if err != nil {
			t.Fatalf("failed to find render command: %v", err)
		}
		args := []string{
			"--pdf", "--spaced",
			"--problems", "1-3",
			"--output", "build",
			"--engine", "lualatex",
			"--source-mods", "mods",
			"--report", "summary.md",
			"--timeout", "2s",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := renderConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.PDF {
			t.Error("expected PDF to be true")
		}
		if !cfg.Spaced {
			t.Error("expected Spaced to be true")
		}
		if cfg.Problems != "1-3" {
			t.Errorf("expected problems '1-3', got %q", cfg.Problems)
		}
		if cfg.OutputDir != "build" {
			t.Errorf("expected output dir 'build', got %q", cfg.OutputDir)
		}
		if cfg.Engine != "lualatex" {
			t.Errorf("expected engine 'lualatex', got %q", cfg.Engine)
		}
		if cfg.SourceModsDir != "mods" {
			t.Errorf("expected source mods dir 'mods', got %q", cfg.SourceModsDir)
		}
		if cfg.ReportFile != "summary.md" {
			t.Errorf("expected report file 'summary.md', got %q", cfg.ReportFile)
		}
		if cfg.Timeout != 2*time.Second {
			t.Errorf("expected timeout 2s, got %s", cfg.Timeout)
		}
	})
}

// TestWriteSummary tests the terminal and markdown build summaries.
func TestWriteSummary(t *testing.T) {
	t.Parallel()

	newReport := func() *model.BuildReport {
		report := model.NewBuildReport(model.VariantCompact)
		report.Problems = []*model.Problem{
			{ID: 1, Title: "Multiples of 3 or 5"},
		}
		report.TexPath = "out/project_euler_offline.tex"
		report.Duration = 2 * time.Second
		return report
	}

	t.Run("without report file", func(t *testing.T) {
		t.Parallel()
		cfg, err := renderTestConfig(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := writeSummary(cfg, newReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("writes markdown report file", func(t *testing.T) {
		t.Parallel()
		cfg, err := renderTestConfig(t)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "summary.md")

		if err := writeSummary(cfg, newReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report file: %v", err)
		}
		if !strings.Contains(string(data), "Project Euler Offline Build") {
			t.Errorf("expected report heading, got %q", string(data))
		}
	})
}

// renderTestConfig builds a default render config for tests.
func renderTestConfig(t *testing.T) (*config.Config, error) {
	t.Helper()
	root := NewRootCmd()
	cmd, _, err := root.Find([]string{"render"})
	if err != nil {
		return nil, err
	}
	if err := cmd.ParseFlags(nil); err != nil {
		return nil, err
	}
	return renderConfig(cmd)
}
