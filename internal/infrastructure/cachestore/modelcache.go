package cachestore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
)

// Last selected model per provider, kept in one small file next to the
// result entries. Missing, expired, or unparseable records read as absent.

type modelRecord struct {
	Model    string    `json:"model"`
	CachedAt time.Time `json:"cached_at"`
}

func (s *Store) modelCachePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Join(s.dir, modelCacheName)
}

// CachedModel returns the remembered model for provider, or absent when the
// record is missing, expired, or corrupt.
func (s *Store) CachedModel(ctx context.Context, provider string) (string, bool) {
	if err := s.EnsureDirectory(ctx); err != nil {
		return "", false
	}

	records := s.readModelRecords()
	rec, ok := records[provider]
	if !ok || rec.Model == "" {
		return "", false
	}
	if time.Since(rec.CachedAt) >= s.cfg.ModelTTL {
		return "", false
	}

	return rec.Model, true
}

// SetCachedModel remembers model for provider. Failures are logged, never
// returned.
func (s *Store) SetCachedModel(ctx context.Context, provider string, model string) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "cachestore"), slog.String("provider", provider))

	if err := s.EnsureDirectory(ctx); err != nil {
		logging.Warn(logCtx, "model cache write skipped", slog.Any("err", errs.Loggable(err)))
		return
	}

	records := s.readModelRecords()
	records[provider] = modelRecord{
		Model:    model,
		CachedAt: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		logging.Warn(logCtx, "model cache encode failed", slog.Any("err", errs.Loggable(err)))
		return
	}

	if err := s.writeFileAtomic(s.modelCachePath(), data); err != nil {
		logging.Warn(logCtx, "model cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}

// readModelRecords never fails; corruption starts the map over.
func (s *Store) readModelRecords() map[string]modelRecord {
	raw, err := os.ReadFile(s.modelCachePath())
	if err != nil {
		return map[string]modelRecord{}
	}

	var records map[string]modelRecord
	if err := json.Unmarshal(raw, &records); err != nil || records == nil {
		return map[string]modelRecord{}
	}
	return records
}
