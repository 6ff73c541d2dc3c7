package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "euler-offline" {
			t.Errorf("expected use 'euler-offline', got %q", cmd.Use)
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

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has base-url flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("base-url")
		if flag == nil {
			t.Fatal("expected base-url flag")
		}
		if flag.DefValue == "" {
			t.Error("expected non-empty default base URL")
		}
	})

	t.Run("has cache-dir flag", func(t *testing.T) {
		t.Parallel()
		if cmd.PersistentFlags().Lookup("cache-dir") == nil {
			t.Fatal("expected cache-dir flag")
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		subcommands := cmd.Commands()
		if len(subcommands) == 0 {
			t.Error("expected subcommands")
		}

		hasFetch := false
		hasRender := false
		hasVersion := false
		for _, sub := range subcommands {
			switch sub.Use {
			case "fetch":
				hasFetch = true
			case "render":
				hasRender = true
			case "version":
				hasVersion = true
			}
		}
		if !hasFetch {
			t.Error("expected fetch subcommand")
		}
		if !hasRender {
			t.Error("expected render subcommand")
		}
		if !hasVersion {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}
