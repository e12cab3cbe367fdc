package applications

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleExport processes GET /applications/export: a CSV download of
// applications, honoring the same query filters as the list endpoint.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	apps, err := h.Store.Find(ctx, filter)
	if err != nil {
		h.Log.Error("export applications failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to export applications")
		return
	}

	filename := "applications-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"application_id", "applicant_name", "birth_date", "email", "phone",
		"institution_id", "status", "notes", "documents", "created_at",
	})
	for _, app := range apps {
		_ = cw.Write([]string{
			app.ApplicationID,
			app.ApplicantName,
			app.BirthDate.Format("2006-01-02"),
			app.Email,
			app.Phone,
			app.InstitutionID.Hex(),
			app.Status,
			app.Notes,
			documentNames(app.Documents),
			app.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Warn("csv write failed", zap.Error(err))
	}
}

// documentNames joins attached document names for the single CSV cell.
func documentNames(docs []models.Document) string {
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return strings.Join(names, "; ")
}
