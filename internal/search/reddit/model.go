package reddit

import (
	"context"
	"log/slog"
	"strings"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
)

const providerName = "openai"

// fallbackModel is used when the model list cannot be fetched.
const fallbackModel = "gpt-5-mini"

// preferredModels in descending preference; the first one the account can
// actually use wins.
var preferredModels = []string{
	"gpt-5-mini",
	"gpt-5",
	"gpt-4.1-mini",
	"gpt-4.1",
	"gpt-4o-mini",
	"gpt-4o",
}

// resolveModel picks the model for this run: explicit config override, then
// the cached last selection, then a fresh lookup against the models list.
// It never fails; the fallback model covers an unreachable API.
func (c *Client) resolveModel(ctx context.Context) string {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "reddit.client"))

	if override := strings.TrimSpace(c.override); override != "" {
		return override
	}

	if cached, ok := c.models.CachedModel(ctx, providerName); ok {
		return cached
	}

	ids, err := c.listModelIDs(ctx)
	if err != nil {
		logging.Warn(logCtx, "model list unavailable, using fallback",
			slog.String("fallback", fallbackModel),
			slog.Any("err", errs.Loggable(err)),
		)
		return fallbackModel
	}

	available := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		available[id] = struct{}{}
	}

	for _, candidate := range preferredModels {
		if _, ok := available[candidate]; !ok {
			continue
		}

		c.models.SetCachedModel(ctx, providerName, candidate)
		logging.Info(logCtx, "model selected", slog.String("model", candidate))
		return candidate
	}

	logging.Warn(logCtx, "no preferred model available, using fallback",
		slog.String("fallback", fallbackModel))
	return fallbackModel
}
