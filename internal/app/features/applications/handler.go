// Package applications implements the application lifecycle: public
// submission, scoped listing, owner/admin detail with a joined institution
// summary, admin review (status and notes), and CSV export.
package applications

import (
	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler is the feature-level entry point for Applications.
type Handler struct {
	Store        *applicationstore.Store
	Institutions *institutionstore.Store
	Log          *zap.Logger
	Audit        *auditlog.Logger
	Mailer       *mailer.Mailer
	SiteName     string
	BaseURL      string
}

// NewHandler constructs an Applications handler bound to a DB and logger.
// The mailer may be disabled; notifications then become logged no-ops.
func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger, m *mailer.Mailer, siteName, baseURL string) *Handler {
	return &Handler{
		Store:        applicationstore.New(db),
		Institutions: institutionstore.New(db),
		Log:          logger,
		Audit:        audit,
		Mailer:       m,
		SiteName:     siteName,
		BaseURL:      baseURL,
	}
}
