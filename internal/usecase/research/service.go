package research

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"last30days/internal/bootstrap/config"
	"last30days/internal/bootstrap/logging"
	domainresearch "last30days/internal/domain/research"
	"last30days/internal/errs"
	"last30days/internal/ports"
)

// XEngine is the bounded-retry X search; it absorbs its own failures.
type XEngine interface {
	Search(ctx context.Context, topic string, fromDate string) []domainresearch.Item
}

// Service orchestrates one research run: cache lookup, channel searches,
// cache write-back, history record.
type Service struct {
	cache   ports.ResultCache
	reddit  ports.RedditSearcher
	xEngine XEngine
	history ports.HistoryRepository
	cfg     config.SearchConfig

	now      func() time.Time
	newRunID func() string
}

func NewService(
	cache ports.ResultCache,
	reddit ports.RedditSearcher,
	xEngine XEngine,
	history ports.HistoryRepository,
	cfg config.SearchConfig,
) *Service {
	return &Service{
		cache:    cache,
		reddit:   reddit,
		xEngine:  xEngine,
		history:  history,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		newRunID: uuid.NewString,
	}
}

type Input struct {
	Topic    string
	FromDate string
	ToDate   string
	Mode     string
	Depth    string
	NoCache  bool
}

// cachedResult is the payload stored under one derived key.
type cachedResult struct {
	RedditItems []domainresearch.Item `json:"reddit_items"`
	XItems      []domainresearch.Item `json:"x_items"`
}

// Run executes one research pass. Channel failures degrade to fewer items;
// the only hard errors are unusable inputs.
func (s *Service) Run(ctx context.Context, input Input) (domainresearch.Report, error) {
	if ctx == nil {
		return domainresearch.Report{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return domainresearch.Report{}, errs.Wrap(err, "check context")
	}

	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return domainresearch.Report{}, errors.New("topic is required")
	}

	mode := strings.TrimSpace(input.Mode)
	if mode == "" {
		mode = s.cfg.Mode
	}
	switch mode {
	case "reddit", "x", "both":
	default:
		return domainresearch.Report{}, errs.Wrapf(errors.New("unsupported mode"), "mode %q", mode)
	}

	depthName := strings.TrimSpace(input.Depth)
	if depthName == "" {
		depthName = s.cfg.Depth
	}

	window, err := s.resolveWindow(input)
	if err != nil {
		return domainresearch.Report{}, err
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "research.service"),
		slog.String("topic", topic),
		slog.String("mode", mode),
	)

	started := s.now()
	key := s.cache.DeriveKey(topic, window.From, window.To, mode)

	report := domainresearch.Report{
		RunID:  s.newRunID(),
		Topic:  topic,
		Window: window,
		Mode:   mode,
		Depth:  depthName,
	}

	if !input.NoCache {
		if raw, ok := s.cache.ReadEntry(ctx, key); ok {
			var cached cachedResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				logging.Info(logCtx, "serving cached result", slog.String("key", key))
				report.FromCache = true
				report.RedditItems = cached.RedditItems
				report.XItems = cached.XItems
				report.GeneratedAt = s.now()
				s.recordRun(ctx, report, s.now().Sub(started))
				return report, nil
			}
		}
	}

	depth := ResolveDepth(ctx, depthName, s.cfg.ProfilesFile)

	if mode == "reddit" || mode == "both" {
		items, err := s.reddit.SearchThreads(ctx, topic, window, depth)
		if err != nil {
			logging.Warn(logCtx, "reddit channel failed, continuing without it",
				slog.Any("err", errs.Loggable(err)))
		}
		report.RedditItems = items
	}

	if mode == "x" || mode == "both" {
		report.XItems = s.xEngine.Search(ctx, topic, window.From)
	}

	s.cache.WriteEntry(ctx, key, cachedResult{
		RedditItems: report.RedditItems,
		XItems:      report.XItems,
	})

	report.GeneratedAt = s.now()
	s.recordRun(ctx, report, s.now().Sub(started))

	logging.Info(logCtx, "research run completed",
		slog.String("run_id", report.RunID),
		slog.Int("reddit_items", len(report.RedditItems)),
		slog.Int("x_items", len(report.XItems)),
	)
	return report, nil
}

// resolveWindow uses explicit dates when given, else the configured trailing
// window ending today.
func (s *Service) resolveWindow(input Input) (domainresearch.Window, error) {
	from := strings.TrimSpace(input.FromDate)
	to := strings.TrimSpace(input.ToDate)

	if from == "" && to == "" {
		end := s.now()
		start := end.AddDate(0, 0, -s.cfg.Days)
		return domainresearch.Window{
			From: start.Format("2006-01-02"),
			To:   end.Format("2006-01-02"),
		}, nil
	}

	if from == "" || to == "" {
		return domainresearch.Window{}, errors.New("from and to dates must be given together")
	}
	for _, date := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return domainresearch.Window{}, errs.Wrapf(err, "parse date %q", date)
		}
	}
	if to < from {
		return domainresearch.Window{}, errors.New("to date is before from date")
	}

	return domainresearch.Window{From: from, To: to}, nil
}

// RecentRuns lists the newest entries from the run ledger.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]domainresearch.RunRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.RecentRuns(ctx, limit)
}

// recordRun is best-effort; the ledger never blocks a result.
func (s *Service) recordRun(ctx context.Context, report domainresearch.Report, duration time.Duration) {
	if s.history == nil {
		return
	}

	err := s.history.RecordRun(ctx, domainresearch.RunRecord{
		RunID:       report.RunID,
		Topic:       report.Topic,
		FromDate:    report.Window.From,
		ToDate:      report.Window.To,
		Mode:        report.Mode,
		Depth:       report.Depth,
		RedditCount: len(report.RedditItems),
		XCount:      len(report.XItems),
		FromCache:   report.FromCache,
		Duration:    duration,
		CreatedAt:   s.now(),
	})
	if err != nil {
		logging.Warn(ctx, "run not recorded in history",
			slog.String("run_id", report.RunID),
			slog.Any("err", errs.Loggable(err)),
		)
	}
}
