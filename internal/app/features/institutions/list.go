package institutions

import (
	"context"
	"net/http"

	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /institutions. The public sees active institutions
// only; admins may add ?include_inactive=true. An optional ?type= narrows
// by institution type.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := institutionstore.Filter{}

	if t := r.URL.Query().Get("type"); t != "" {
		if !models.IsValidInstitutionType(t) {
			httpjson.Error(w, http.StatusBadRequest, "unknown institution type")
			return
		}
		filter.Type = t
	}

	if r.URL.Query().Get("include_inactive") == "true" {
		u, ok := auth.CurrentUser(r)
		if !ok || u.Role != models.RoleAdmin {
			httpjson.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		filter.IncludeInactive = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	insts, err := h.Store.List(ctx, filter)
	if err != nil {
		h.Log.Error("list institutions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load institutions")
		return
	}

	httpjson.Write(w, http.StatusOK, toResponseList(insts))
}

// ServeView handles GET /institutions/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid institution id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inst, err := h.Store.GetByID(ctx, id)
	if err == institutionstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "institution not found")
		return
	}
	if err != nil {
		h.Log.Error("get institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load institution")
		return
	}

	httpjson.Write(w, http.StatusOK, toResponse(*inst))
}
