package research

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"last30days/internal/bootstrap/logging"
	domainresearch "last30days/internal/domain/research"
	"last30days/internal/errs"
)

// Depth presets: how many items to request and how long an external call
// may take. A profiles.toml file can override individual presets.
var depthPresets = map[string]domainresearch.DepthSpec{
	"quick":   {Name: "quick", MinItems: 8, MaxItems: 12, Timeout: 60 * time.Second},
	"default": {Name: "default", MinItems: 20, MaxItems: 30, Timeout: 90 * time.Second},
	"deep":    {Name: "deep", MinItems: 50, MaxItems: 70, Timeout: 120 * time.Second},
}

type profileDepthConfig struct {
	MinItems       int `toml:"min_items"`
	MaxItems       int `toml:"max_items"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type searchProfile struct {
	Depths map[string]profileDepthConfig `toml:"depths"`
}

// ResolveDepth maps a depth name to its spec. Unknown names fall back to the
// default preset; a broken profiles file keeps the preset values.
func ResolveDepth(ctx context.Context, name string, profilesFile string) domainresearch.DepthSpec {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "research.profile"))

	normalized := strings.ToLower(strings.TrimSpace(name))
	spec, ok := depthPresets[normalized]
	if !ok {
		if normalized != "" {
			logging.Warn(logCtx, "unknown depth, using default", slog.String("depth", name))
		}
		spec = depthPresets["default"]
	}

	file := strings.TrimSpace(profilesFile)
	if file == "" {
		return spec
	}

	profile, err := loadSearchProfile(file)
	if err != nil {
		logging.Warn(logCtx, "profiles file unusable, keeping presets",
			slog.String("file", file),
			slog.Any("err", errs.Loggable(err)),
		)
		return spec
	}

	override, ok := profile.Depths[spec.Name]
	if !ok {
		return spec
	}

	if override.MinItems > 0 {
		spec.MinItems = override.MinItems
	}
	if override.MaxItems > 0 {
		spec.MaxItems = override.MaxItems
	}
	if override.TimeoutSeconds > 0 {
		spec.Timeout = time.Duration(override.TimeoutSeconds) * time.Second
	}
	return spec
}

func loadSearchProfile(path string) (searchProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return searchProfile{}, errs.Wrap(err, "read profiles file")
	}

	var profile searchProfile
	if err := toml.Unmarshal(raw, &profile); err != nil {
		return searchProfile{}, errs.Wrap(err, "parse profiles file")
	}
	return profile, nil
}
