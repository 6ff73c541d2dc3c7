package main

import (
	"testing"
	"time"
)

// TestNewFetchCmd tests the fetch command creation.
func TestNewFetchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFetchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "fetch" {
			t.Errorf("expected use 'fetch', got %q", cmd.Use)
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

	t.Run("has cache-only flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("cache-only") == nil {
			t.Fatal("expected cache-only flag")
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})

	t.Run("has batch flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.Shorthand != "b" {
			t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})
}

// TestFetchConfig tests config construction from fetch command flags.
func TestFetchConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := fetchConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Problems != "" {
			t.Errorf("expected empty problem selection, got %q", cfg.Problems)
		}
		if cfg.CacheOnly {
			t.Error("expected CacheOnly to default to false")
		}
		if cfg.Force {
			t.Error("expected Force to default to false")
		}
		if cfg.BatchSize <= 0 {
			t.Errorf("expected positive default batch size, got %d", cfg.BatchSize)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}
		args := []string{"--problems", "1,5-10", "--batch", "4", "--force", "--timeout", "5s"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := fetchConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Problems != "1,5-10" {
			t.Errorf("expected problems '1,5-10', got %q", cfg.Problems)
		}
		if cfg.BatchSize != 4 {
			t.Errorf("expected batch size 4, got %d", cfg.BatchSize)
		}
		if !cfg.Force {
			t.Error("expected Force to be true")
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %s", cfg.Timeout)
		}
	})

	t.Run("missing explicit config file errors", func(t *testing.T) {
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}
		args := []string{"--config", "/nonexistent/euler-offline.yml"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := fetchConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestSelectedProblems tests problem selection parsing.
func TestSelectedProblems(t *testing.T) {
	t.Parallel()

	t.Run("empty selection means all problems", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		cfg, err := fetchConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ids, err := selectedProblems(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ids != nil {
			t.Errorf("expected nil selection, got %v", ids)
		}
	})

	t.Run("parses ranges and singles", func(t *testing.T) {
		t.Parallel()
		root := NewRootCmd()
		cmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}
		if err := cmd.ParseFlags([]string{"--problems", "3,1-2"}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}
		cfg, err := fetchConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ids, err := selectedProblems(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []int{1, 2, 3}
		if len(ids) != len(want) {
			t.Fatalf("expected %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, ids)
			}
		}
	})
}

// TestSetupLogger tests the logger setup.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("creates logger for verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(true)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})

	t.Run("creates logger for non-verbose mode", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(false)
		if logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewFetchCmd()
		if getVerboseFlag(cmd) {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		fetchCmd, _, err := root.Find([]string{"fetch"})
		if err != nil {
			t.Fatalf("failed to find fetch command: %v", err)
		}

		if !getVerboseFlag(fetchCmd) {
			t.Error("expected true from parent verbose flag")
		}
	})
}
