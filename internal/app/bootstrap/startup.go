// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. EnrollHub
// uses it to bootstrap the initial admin account from config so a fresh
// deployment has a way in.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}
	return ensureAdminUser(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger)
}

// ensureAdminUser guarantees an admin account with the given email exists.
// A missing user is created with the configured password; an existing user
// with a different role is promoted. An existing admin is left untouched,
// including its password.
func ensureAdminUser(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.EnrollHubMongoDatabase)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		if err := users.UpdateRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", existing.Email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		created, err := users.Create(ctx, models.User{
			Name:  "Administrator",
			Email: email,
			Role:  models.RoleAdmin,
		}, password)
		if err != nil {
			return err
		}
		logger.Info("created initial admin user", zap.String("email", created.Email))
		return nil

	default:
		return err
	}
}
