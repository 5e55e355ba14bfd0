// Package cachestore persists search results and model selections on disk.
// Caching here is a best-effort optimization: every read failure degrades to
// a miss and every write failure is logged and swallowed, so callers never
// depend on the cache for correctness.
package cachestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
)

const (
	productName    = "last30days"
	entrySuffix    = ".json"
	modelCacheName = "model_selection.json"

	// EnvDirOverride redirects the cache root when set.
	EnvDirOverride = "LAST30DAYS_CACHE_DIR"

	DefaultEntryTTL = 24 * time.Hour
	DefaultModelTTL = 24 * time.Hour
)

type Config struct {
	EntryTTL time.Duration
	ModelTTL time.Duration
}

// Store resolves one cache directory and reads/writes entries under it.
// The directory is explicit state owned by the store, never a package
// global; ResolveDirectory exists so tests can force a re-resolution.
type Store struct {
	cfg Config

	mu  sync.Mutex
	dir string

	// mkdir is swappable in tests to simulate permission failures.
	mkdir func(path string, perm os.FileMode) error
}

func New(cfg Config) *Store {
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = DefaultEntryTTL
	}
	if cfg.ModelTTL <= 0 {
		cfg.ModelTTL = DefaultModelTTL
	}

	return &Store{
		cfg:   cfg,
		mkdir: os.MkdirAll,
	}
}

// DeriveKey maps the search parameter tuple to a fixed 16-character token.
// Pure: it depends on nothing but its four inputs.
func DeriveKey(topic, fromDate, toDate, mode string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{topic, fromDate, toDate, mode}, "|")))
	return hex.EncodeToString(sum[:8])
}

func (s *Store) DeriveKey(topic, fromDate, toDate, mode string) string {
	return DeriveKey(topic, fromDate, toDate, mode)
}

// EnsureDirectory resolves and creates the cache directory once. Repeated
// calls are no-ops after a working directory has been established.
func (s *Store) EnsureDirectory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dir != "" {
		return nil
	}
	return s.resolveLocked(ctx)
}

// ResolveDirectory discards any previously resolved directory and resolves
// again from scratch.
func (s *Store) ResolveDirectory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dir = ""
	return s.resolveLocked(ctx)
}

// resolveLocked picks the directory in order: env override verbatim, the
// per-user cache path, then a temp-rooted fallback on permission failure.
// Concurrent processes racing on MkdirAll are fine: "already exists" is
// success.
func (s *Store) resolveLocked(ctx context.Context) error {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "cachestore"))

	dir := preferredDirectory()

	err := s.mkdir(dir, 0o755)
	if err != nil && errors.Is(err, fs.ErrPermission) {
		fallback := filepath.Join(os.TempDir(), productName, "cache")
		logging.Warn(logCtx, "cache directory not writable, falling back to temp",
			slog.String("preferred", dir),
			slog.String("fallback", fallback),
			slog.Any("err", errs.Loggable(err)),
		)
		dir = fallback
		err = s.mkdir(dir, 0o755)
	}
	if err != nil {
		return errs.Wrapf(err, "create cache directory %s", dir)
	}

	s.dir = dir
	return nil
}

func preferredDirectory() string {
	if override := os.Getenv(EnvDirOverride); override != "" {
		return override
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), productName, "cache")
	}
	return filepath.Join(base, productName)
}

// Directory returns the resolved cache directory, resolving it on first use.
func (s *Store) Directory(ctx context.Context) (string, error) {
	if err := s.EnsureDirectory(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir, nil
}

// EntryPath maps a key to its file location under the resolved directory.
func (s *Store) EntryPath(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filepath.Join(s.dir, key+entrySuffix)
}

// IsValid reports whether path holds a fresh cache entry. A missing or
// unreadable target is invalid, never an error.
func (s *Store) IsValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < s.cfg.EntryTTL
}

type entry struct {
	Key       string          `json:"key"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// ReadEntry returns the cached payload for key, or a miss when the entry is
// absent, stale, or corrupt.
func (s *Store) ReadEntry(ctx context.Context, key string) (json.RawMessage, bool) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "cachestore"), slog.String("key", key))

	if err := s.EnsureDirectory(ctx); err != nil {
		logging.Warn(logCtx, "cache read skipped", slog.Any("err", errs.Loggable(err)))
		return nil, false
	}

	path := s.EntryPath(key)
	if !s.IsValid(path) {
		return nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Corrupt entry: a later successful write supersedes it.
		logging.Warn(logCtx, "corrupt cache entry treated as miss", slog.Any("err", errs.Loggable(err)))
		return nil, false
	}

	return e.Payload, true
}

// WriteEntry stores payload under key. Failures are logged, never returned.
func (s *Store) WriteEntry(ctx context.Context, key string, payload any) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "cachestore"), slog.String("key", key))

	if err := s.EnsureDirectory(ctx); err != nil {
		logging.Warn(logCtx, "cache write skipped", slog.Any("err", errs.Loggable(err)))
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		logging.Warn(logCtx, "cache payload not serializable", slog.Any("err", errs.Loggable(err)))
		return
	}

	data, err := json.MarshalIndent(entry{
		Key:       key,
		CreatedAt: time.Now().UTC(),
		Payload:   raw,
	}, "", "  ")
	if err != nil {
		logging.Warn(logCtx, "cache entry encode failed", slog.Any("err", errs.Loggable(err)))
		return
	}

	if err := s.writeFileAtomic(s.EntryPath(key), data); err != nil {
		logging.Warn(logCtx, "cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}

// writeFileAtomic writes via a temp file and rename so readers never observe
// a partially written entry.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errs.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errs.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errs.Wrap(err, "rename temp file")
	}
	return nil
}
