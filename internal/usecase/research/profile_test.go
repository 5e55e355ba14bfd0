package research

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveDepthPresets(t *testing.T) {
	ctx := context.Background()

	quick := ResolveDepth(ctx, "quick", "")
	if quick.MinItems != 8 || quick.MaxItems != 12 || quick.Timeout != 60*time.Second {
		t.Fatalf("quick preset = %+v", quick)
	}

	deep := ResolveDepth(ctx, "deep", "")
	if deep.MinItems != 50 || deep.MaxItems != 70 || deep.Timeout != 120*time.Second {
		t.Fatalf("deep preset = %+v", deep)
	}
}

func TestResolveDepthUnknownFallsBackToDefault(t *testing.T) {
	spec := ResolveDepth(context.Background(), "extreme", "")

	if spec.Name != "default" || spec.MinItems != 20 || spec.MaxItems != 30 {
		t.Fatalf("unknown depth resolved to %+v, want default preset", spec)
	}
}

func TestResolveDepthProfileOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profiles.toml")
	content := `
[depths.quick]
min_items = 3
max_items = 5
timeout_seconds = 30
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	spec := ResolveDepth(context.Background(), "quick", file)
	if spec.MinItems != 3 || spec.MaxItems != 5 || spec.Timeout != 30*time.Second {
		t.Fatalf("overridden quick = %+v", spec)
	}

	// Presets without an override section keep their values.
	deep := ResolveDepth(context.Background(), "deep", file)
	if deep.MinItems != 50 {
		t.Fatalf("deep affected by unrelated override: %+v", deep)
	}
}

func TestResolveDepthPartialOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(file, []byte("[depths.default]\nmax_items = 40\n"), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	spec := ResolveDepth(context.Background(), "default", file)
	if spec.MaxItems != 40 {
		t.Fatalf("max_items = %d, want 40", spec.MaxItems)
	}
	if spec.MinItems != 20 || spec.Timeout != 90*time.Second {
		t.Fatalf("untouched fields changed: %+v", spec)
	}
}

func TestResolveDepthBrokenProfileKeepsPresets(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(file, []byte("not toml ["), 0o644); err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	spec := ResolveDepth(context.Background(), "quick", file)
	if spec.MinItems != 8 || spec.MaxItems != 12 {
		t.Fatalf("broken profile changed preset: %+v", spec)
	}
}

func TestResolveDepthMissingProfileKeepsPresets(t *testing.T) {
	spec := ResolveDepth(context.Background(), "quick", "/nonexistent/profiles.toml")
	if spec.MinItems != 8 {
		t.Fatalf("missing profile changed preset: %+v", spec)
	}
}
