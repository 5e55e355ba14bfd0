package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"last30days/internal/bootstrap/config"
	"last30days/internal/bootstrap/database"
	"last30days/internal/bootstrap/logging"
	domainresearch "last30days/internal/domain/research"
	"last30days/internal/infrastructure/cachestore"
	sqliterepo "last30days/internal/infrastructure/persistence/sqlite/repository"
	"last30days/internal/ports"
	"last30days/internal/search/reddit"
	"last30days/internal/search/xsearch"
	researchuc "last30days/internal/usecase/research"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideCacheStore),
	fx.Provide(provideApp),
	fx.Provide(func(s *cachestore.Store) ports.ResultCache { return s }),
	fx.Provide(func(s *cachestore.Store) ports.ModelCache { return s }),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewHistoryRepository,
			fx.As(new(ports.HistoryRepository)),
		),
	),
	fx.Provide(provideRedditSearcher),
	fx.Provide(provideBirdClient),
	fx.Provide(provideXEngine),
	fx.Provide(provideService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideCacheStore(cfg config.Config) *cachestore.Store {
	return cachestore.New(cachestore.Config{
		EntryTTL: time.Duration(cfg.Cache.TTLHours) * time.Hour,
		ModelTTL: time.Duration(cfg.Cache.ModelTTLHours) * time.Hour,
	})
}

func provideApp(cfg config.Config, db *gorm.DB, store *cachestore.Store) *App {
	return &App{
		Config: cfg,
		DB:     db,
		Cache:  store,
	}
}

func provideRedditSearcher(cfg config.Config, models ports.ModelCache) ports.RedditSearcher {
	return reddit.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, models)
}

func provideBirdClient(ctx context.Context, cfg config.Config) *xsearch.BirdClient {
	depth := researchuc.ResolveDepth(ctx, cfg.Search.Depth, cfg.Search.ProfilesFile)
	return xsearch.NewBirdClient(cfg.Search.BirdBinary, depth)
}

func provideXEngine(client *xsearch.BirdClient) researchuc.XEngine {
	return xsearch.NewRetryEngine(client, domainresearch.NewTermExtractor())
}

func provideService(
	cache ports.ResultCache,
	redditSearcher ports.RedditSearcher,
	engine researchuc.XEngine,
	history ports.HistoryRepository,
	cfg config.Config,
) *researchuc.Service {
	return researchuc.NewService(cache, redditSearcher, engine, history, cfg.Search)
}
