package migrate

import (
	"context"
	"fmt"

	"github.com/arvoredo/arvoredo-pos/pkg/config"
	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/logger"
)

// MaybeRun initializes the store schema on startup unless the auto-migrate
// flag was switched off. The desktop binary owns its store file, so this is
// how a first launch creates the tables.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "path", cfg.DB.Path)
	logg.Info(ctx, "ensuring store schema")

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "store schema up to date")
	return nil
}
