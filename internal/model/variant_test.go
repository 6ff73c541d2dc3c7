package model

import "testing"

// TestVariantString verifies the human-readable variant names.
func TestVariantString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant Variant
		want    string
	}{
		{VariantCompact, "compact"},
		{VariantSpaced, "spaced"},
		{Variant(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.variant.String(); got != tt.want {
			t.Errorf("Variant(%d).String() = %q, want %q", int(tt.variant), got, tt.want)
		}
	}
}

// TestVariantBuildName verifies that the spaced variant gets its own
// artifact name so both layouts can coexist in one output directory.
func TestVariantBuildName(t *testing.T) {
	t.Parallel()

	if got := VariantCompact.BuildName(); got != "project_euler_offline" {
		t.Errorf("compact build name = %q", got)
	}
	if got := VariantSpaced.BuildName(); got != "project_euler_offline_spaced" {
		t.Errorf("spaced build name = %q", got)
	}
}
