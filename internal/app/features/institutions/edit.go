package institutions

import (
	"context"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/store/audit"
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// updateInput defines validation rules for a partial institution update.
// Absent fields are left unchanged.
type updateInput struct {
	Name         string `json:"name" validate:"omitempty,min=3,max=200" label:"Name"`
	Type         string `json:"type" validate:"omitempty,oneof=kindergarten school college" label:"Type"`
	Address      string `json:"address" validate:"omitempty,min=5,max=300" label:"Address"`
	City         string `json:"city" validate:"omitempty,min=2,max=100" label:"City"`
	Region       string `json:"region" validate:"omitempty,min=2,max=100" label:"Region"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,min=5,max=30" label:"Contact phone"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email,max=254" label:"Contact email"`
	Description  string `json:"description" validate:"omitempty,min=10,max=5000" label:"Description"`
	Capacity     *int   `json:"capacity" validate:"omitempty,min=1" label:"Capacity"`
}

// HandleUpdate processes PUT /institutions/{id}.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid institution id")
		return
	}

	var in updateInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Store.Update(ctx, id, models.Institution{
		Name:         in.Name,
		Type:         in.Type,
		Address:      in.Address,
		City:         in.City,
		Region:       in.Region,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Description:  htmlsanitize.Plain(in.Description),
	}, in.Capacity)
	if err == institutionstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "institution not found")
		return
	}
	if err != nil {
		h.Log.Error("update institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update institution")
		return
	}

	if _, _, actorID, ok := authz.UserCtx(r); ok {
		h.Audit.InstitutionEvent(ctx, r, audit.EventInstitutionUpdated, actorID, id)
	}

	inst, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load institution")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(*inst))
}
