// Package institutions implements the institution catalog: public listing
// and detail plus admin-only create, update, and deactivate. Deactivation
// is a soft delete so existing applications keep a valid reference.
package institutions

import (
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler is the feature-level entry point for Institutions.
type Handler struct {
	Store *institutionstore.Store
	Log   *zap.Logger
	Audit *auditlog.Logger
}

// NewHandler constructs an Institutions handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		Store: institutionstore.New(db),
		Log:   logger,
		Audit: audit,
	}
}
