// Package stats implements the admin dashboard numbers: entity totals, the
// per-institution-type application breakdown, and daily activity for the
// trailing 30 days.
package stats

import (
	"context"
	"net/http"

	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Stats.
type Handler struct {
	Applications *applicationstore.Store
	Institutions *institutionstore.Store
	Users        *userstore.Store
	Log          *zap.Logger
}

// NewHandler constructs a stats Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: applicationstore.New(db),
		Institutions: institutionstore.New(db),
		Users:        userstore.New(db),
		Log:          logger,
	}
}

type statsResponse struct {
	Totals struct {
		Applications int64            `json:"applications"`
		Institutions int64            `json:"institutions"`
		Users        int64            `json:"users"`
		ByStatus     map[string]int64 `json:"byStatus"`
	} `json:"totals"`
	ByInstitutionType []applicationstore.TypeCount `json:"byInstitutionType"`
	Last30Days        []applicationstore.DayCount  `json:"last30Days"`
}

// Serve handles GET /admin/stats.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var resp statsResponse
	var err error

	if resp.Totals.Applications, err = h.Applications.Count(ctx); err != nil {
		h.serveError(w, "count applications", err)
		return
	}
	if resp.Totals.Institutions, err = h.Institutions.CountActive(ctx); err != nil {
		h.serveError(w, "count institutions", err)
		return
	}
	if resp.Totals.Users, err = h.Users.Count(ctx); err != nil {
		h.serveError(w, "count users", err)
		return
	}
	if resp.Totals.ByStatus, err = h.Applications.CountByStatus(ctx); err != nil {
		h.serveError(w, "count by status", err)
		return
	}
	if resp.ByInstitutionType, err = h.Applications.CountByInstitutionType(ctx); err != nil {
		h.serveError(w, "count by institution type", err)
		return
	}
	if resp.Last30Days, err = h.Applications.CountByDay(ctx); err != nil {
		h.serveError(w, "count by day", err)
		return
	}

	if resp.ByInstitutionType == nil {
		resp.ByInstitutionType = []applicationstore.TypeCount{}
	}
	if resp.Last30Days == nil {
		resp.Last30Days = []applicationstore.DayCount{}
	}

	httpjson.Write(w, http.StatusOK, resp)
}

func (h *Handler) serveError(w http.ResponseWriter, what string, err error) {
	h.Log.Error("stats query failed", zap.String("query", what), zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "failed to load statistics")
}
