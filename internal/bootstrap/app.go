package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"last30days/internal/bootstrap/config"
	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
	"last30days/internal/infrastructure/cachestore"
	"last30days/internal/infrastructure/persistence/sqlite/model"
)

// App aggregates the shared infrastructure behind every command. It is
// built through the fx module; the lifecycle hook there closes the DB.
type App struct {
	Config config.Config
	DB     *gorm.DB
	Cache  *cachestore.Store
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(
		&model.Run{},
	); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}
