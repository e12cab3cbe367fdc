// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/enrollhub/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the MongoDB indexes the app depends on, including
// the unique case-insensitive email index on users and the unique
// application_id index. Index creation is idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.EnrollHubMongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	logger.Info("MongoDB indexes ensured")
	return nil
}
