package institutions

import (
	"context"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/store/audit"
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDeactivate processes DELETE /institutions/{id}. Soft delete:
// the record stays so existing applications keep a valid reference.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid institution id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Store.Deactivate(ctx, id)
	if err == institutionstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "institution not found")
		return
	}
	if err != nil {
		h.Log.Error("deactivate institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to deactivate institution")
		return
	}

	if _, _, actorID, ok := authz.UserCtx(r); ok {
		h.Audit.InstitutionEvent(ctx, r, audit.EventInstitutionDeactivated, actorID, id)
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}
