package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"last30days/internal/domain/research"
	"last30days/internal/infrastructure/persistence/sqlite/model"
)

func setupHistoryRepository(t *testing.T) *HistoryRepository {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "history.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.Run{}); err != nil {
		t.Fatalf("auto migrate runs: %v", err)
	}

	return NewHistoryRepository(db)
}

func TestRecordThenListRuns(t *testing.T) {
	repo := setupHistoryRepository(t)
	ctx := context.Background()

	first := research.RunRecord{
		RunID:       uuid.NewString(),
		Topic:       "figma plugins",
		FromDate:    "2026-01-01",
		ToDate:      "2026-01-31",
		Mode:        "both",
		Depth:       "default",
		RedditCount: 12,
		XCount:      4,
		Duration:    3200 * time.Millisecond,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	}
	second := research.RunRecord{
		RunID:     uuid.NewString(),
		Topic:     "swiftui animations",
		FromDate:  "2026-01-01",
		ToDate:    "2026-01-31",
		Mode:      "reddit",
		Depth:     "quick",
		FromCache: true,
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.RecordRun(ctx, first); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if err := repo.RecordRun(ctx, second); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := repo.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns() = %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].Topic != "swiftui animations" {
		t.Fatalf("runs[0].Topic = %q, want newest run first", runs[0].Topic)
	}
	if !runs[0].FromCache {
		t.Fatalf("runs[0].FromCache = false, want true")
	}
	if runs[1].RedditCount != 12 || runs[1].XCount != 4 {
		t.Fatalf("runs[1] counts = %d/%d", runs[1].RedditCount, runs[1].XCount)
	}
	if runs[1].Duration != 3200*time.Millisecond {
		t.Fatalf("runs[1].Duration = %v", runs[1].Duration)
	}

	if _, err := uuid.Parse(runs[0].RunID); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", runs[0].RunID, err)
	}
}

func TestRecordRunRequiresRunID(t *testing.T) {
	repo := setupHistoryRepository(t)

	err := repo.RecordRun(context.Background(), research.RunRecord{Topic: "x"})
	if err == nil {
		t.Fatalf("RecordRun() expected error for empty run id")
	}
}

func TestRecentRunsDefaultLimit(t *testing.T) {
	repo := setupHistoryRepository(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		run := research.RunRecord{
			RunID:     uuid.NewString(),
			Topic:     "topic",
			FromDate:  "2026-01-01",
			ToDate:    "2026-01-31",
			Mode:      "both",
			Depth:     "default",
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := repo.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
	}

	runs, err := repo.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("RecentRuns(0) = %d runs, want default limit 20", len(runs))
	}
}
