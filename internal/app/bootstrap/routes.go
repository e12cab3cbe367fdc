// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	applicationsfeature "github.com/dalemusser/enrollhub/internal/app/features/applications"
	healthfeature "github.com/dalemusser/enrollhub/internal/app/features/health"
	institutionsfeature "github.com/dalemusser/enrollhub/internal/app/features/institutions"
	loginfeature "github.com/dalemusser/enrollhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/enrollhub/internal/app/features/logout"
	registerfeature "github.com/dalemusser/enrollhub/internal/app/features/register"
	statsfeature "github.com/dalemusser/enrollhub/internal/app/features/stats"
	statusfeature "github.com/dalemusser/enrollhub/internal/app/features/status"
	uploadfeature "github.com/dalemusser/enrollhub/internal/app/features/upload"
	usersfeature "github.com/dalemusser/enrollhub/internal/app/features/users"
	auditstore "github.com/dalemusser/enrollhub/internal/app/store/audit"
	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/app/system/mailer"
	"github.com/dalemusser/enrollhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// EnrollHub wires the session middleware, audit logging, the notification
// mailer, local document storage, and the JSON feature routers: health,
// auth, institutions, applications, status check, upload, and the admin
// surface (stats, users).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.EnrollHubMongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. This ensures role changes take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Audit trail for auth and admin actions, routed per config to
	// MongoDB, zap, both, or neither.
	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Applicant notification mailer. A blank SMTP host leaves it disabled
	// and status-change notifications become logged no-ops.
	notifier := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)

	// Local storage for uploaded application documents.
	docStore, err := storage.NewLocal(storage.LocalConfig{BasePath: appCfg.StorageLocalPath})
	if err != nil {
		logger.Error("document storage init failed", zap.Error(err))
		return nil, err
	}

	// Rate limiters for the anonymous auth endpoints.
	window, err := time.ParseDuration(appCfg.AuthRateWindow)
	if err != nil || window <= 0 {
		logger.Warn("invalid auth_rate_window; using 1m",
			zap.String("value", appCfg.AuthRateWindow))
		window = time.Minute
	}
	registerLimiter := ratelimit.New(appCfg.AuthRateLimit, window)
	loginLimiter := ratelimit.New(appCfg.AuthRateLimit, window)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.EnrollHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded documents, served from local storage with pre-compressed
	// file support (gzip/brotli)
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Authentication
	registerHandler := registerfeature.NewHandler(db, logger, auditLog)
	r.Mount("/auth/register", registerfeature.Routes(registerHandler, registerLimiter))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger, auditLog)
	r.Mount("/auth/login", loginfeature.Routes(loginHandler, loginLimiter))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger, auditLog)
	r.Mount("/auth/logout", logoutfeature.Routes(logoutHandler))

	// Institution catalog and admin management
	institutionsHandler := institutionsfeature.NewHandler(db, logger, auditLog)
	r.Mount("/institutions", institutionsfeature.Routes(institutionsHandler, sessionMgr))

	// Application submission, listing, review, and export
	applicationsHandler := applicationsfeature.NewHandler(db, logger, auditLog, notifier, appCfg.SiteName, appCfg.BaseURL)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler, sessionMgr))

	// Public status check for applicants without an account
	statusHandler := statusfeature.NewHandler(db, logger)
	r.Mount("/status", statusfeature.Routes(statusHandler))

	// Document upload for application attachments
	uploadHandler := uploadfeature.NewHandler(docStore, appCfg.StorageLocalURL, logger)
	r.Mount("/upload", uploadfeature.Routes(uploadHandler, sessionMgr))

	// Admin surface
	statsHandler := statsfeature.NewHandler(db, logger)
	r.Mount("/admin/stats", statsfeature.Routes(statsHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(db, logger, auditLog)
	r.Mount("/admin/users", usersfeature.Routes(usersHandler, sessionMgr))

	return r, nil
}
