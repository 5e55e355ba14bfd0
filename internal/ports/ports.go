package ports

import (
	"context"
	"encoding/json"

	"last30days/internal/domain/research"
)

// XSearcher runs one X search attempt. A transport failure is reported as an
// error; callers decide whether to absorb it.
type XSearcher interface {
	Search(ctx context.Context, query string, since string) ([]research.Item, error)
}

// SubjectExtractor reduces a topic to salient terms, most salient first,
// space-separated. Consulted only after an unproductive search attempt.
type SubjectExtractor interface {
	CoreSubject(ctx context.Context, topic string) (string, error)
}

// RedditSearcher discovers discussion threads for a topic inside a window.
type RedditSearcher interface {
	SearchThreads(ctx context.Context, topic string, window research.Window, depth research.DepthSpec) ([]research.Item, error)
}

// ResultCache is the best-effort result store keyed by search parameters.
// Reads degrade to a miss on any failure; writes never surface errors.
type ResultCache interface {
	DeriveKey(topic, fromDate, toDate, mode string) string
	ReadEntry(ctx context.Context, key string) (json.RawMessage, bool)
	WriteEntry(ctx context.Context, key string, payload any)
}

// ModelCache persists the last selected model per provider.
type ModelCache interface {
	CachedModel(ctx context.Context, provider string) (string, bool)
	SetCachedModel(ctx context.Context, provider string, model string)
}

// HistoryRepository records completed research runs.
type HistoryRepository interface {
	RecordRun(ctx context.Context, run research.RunRecord) error
	RecentRuns(ctx context.Context, limit int) ([]research.RunRecord, error)
}
