package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"last30days/internal/domain/research"
	"last30days/internal/errs"
	"last30days/internal/infrastructure/persistence/sqlite/model"
	"last30days/internal/ports"
)

// HistoryRepository persists the research run ledger in SQLite.
type HistoryRepository struct {
	db *gorm.DB
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) RecordRun(ctx context.Context, run research.RunRecord) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	runID := strings.TrimSpace(run.RunID)
	if runID == "" {
		return errors.New("run id is required")
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := model.Run{
		RunID:       runID,
		Topic:       strings.TrimSpace(run.Topic),
		FromDate:    run.FromDate,
		ToDate:      run.ToDate,
		Mode:        run.Mode,
		Depth:       run.Depth,
		RedditCount: run.RedditCount,
		XCount:      run.XCount,
		FromCache:   run.FromCache,
		DurationMS:  run.Duration.Milliseconds(),
		CreatedAt:   createdAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert run row")
	}
	return nil
}

func (r *HistoryRepository) RecentRuns(ctx context.Context, limit int) ([]research.RunRecord, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	if limit <= 0 {
		limit = 20
	}

	var rows []model.Run
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query recent runs")
	}

	records := make([]research.RunRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, research.RunRecord{
			RunID:       row.RunID,
			Topic:       row.Topic,
			FromDate:    row.FromDate,
			ToDate:      row.ToDate,
			Mode:        row.Mode,
			Depth:       row.Depth,
			RedditCount: row.RedditCount,
			XCount:      row.XCount,
			FromCache:   row.FromCache,
			Duration:    time.Duration(row.DurationMS) * time.Millisecond,
			CreatedAt:   row.CreatedAt,
		})
	}
	return records, nil
}
