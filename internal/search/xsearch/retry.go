package xsearch

import (
	"context"
	"log/slog"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/domain/research"
	"last30days/internal/errs"
	"last30days/internal/ports"
)

// maxAttempts bounds the retry ladder: literal topic, two salient terms,
// then the single strongest term. Never a fourth attempt.
const maxAttempts = 3

// RetryEngine drives a bounded sequence of search attempts, narrowing the
// query after each empty result set. The date filter suffix stays constant
// across attempts; recency beats phrase fidelity.
type RetryEngine struct {
	searcher  ports.XSearcher
	extractor ports.SubjectExtractor
}

func NewRetryEngine(searcher ports.XSearcher, extractor ports.SubjectExtractor) *RetryEngine {
	return &RetryEngine{
		searcher:  searcher,
		extractor: extractor,
	}
}

// Search returns the first non-empty result set, or an empty set after the
// attempts are exhausted. It never fails: transport errors consume an
// attempt and are absorbed.
func (e *RetryEngine) Search(ctx context.Context, topic string, fromDate string) []research.Item {
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "xsearch.retry"),
		slog.String("topic", topic),
	)

	items := e.attempt(logCtx, 1, research.SinceQuery(topic, fromDate), fromDate)
	if len(items) > 0 {
		return items
	}

	subject, err := e.extractor.CoreSubject(ctx, topic)
	if err != nil {
		logging.Warn(logCtx, "core subject extraction failed, giving up",
			slog.Any("err", errs.Loggable(err)))
		return nil
	}

	narrowed := research.NarrowedQueries(subject)
	for i, candidate := range narrowed {
		if candidate == "" {
			continue
		}

		items = e.attempt(logCtx, i+2, research.SinceQuery(candidate, fromDate), fromDate)
		if len(items) > 0 {
			return items
		}
	}

	logging.Info(logCtx, "all attempts empty", slog.Int("attempts", maxAttempts))
	return nil
}

// attempt absorbs transport failures; an errored call counts the same as an
// empty result set.
func (e *RetryEngine) attempt(ctx context.Context, index int, query string, since string) []research.Item {
	attemptCtx := logging.WithAttrs(ctx,
		slog.Int("attempt", index),
		slog.String("query", query),
	)

	items, err := e.searcher.Search(ctx, query, since)
	if err != nil {
		logging.Warn(attemptCtx, "search attempt failed", slog.Any("err", errs.Loggable(err)))
		return nil
	}

	if len(items) == 0 {
		logging.Info(attemptCtx, "search attempt returned no results")
		return nil
	}

	logging.Info(attemptCtx, "search attempt succeeded", slog.Int("items", len(items)))
	return items
}
