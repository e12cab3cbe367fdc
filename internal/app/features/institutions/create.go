package institutions

import (
	"context"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/store/audit"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"go.uber.org/zap"
)

// createInput defines validation rules for creating an institution.
type createInput struct {
	Name         string `json:"name" validate:"required,min=3,max=200" label:"Name"`
	Type         string `json:"type" validate:"required,oneof=kindergarten school college" label:"Type"`
	Address      string `json:"address" validate:"required,min=5,max=300" label:"Address"`
	City         string `json:"city" validate:"required,min=2,max=100" label:"City"`
	Region       string `json:"region" validate:"required,min=2,max=100" label:"Region"`
	ContactPhone string `json:"contactPhone" validate:"required,min=5,max=30" label:"Contact phone"`
	ContactEmail string `json:"contactEmail" validate:"required,email,max=254" label:"Contact email"`
	Description  string `json:"description" validate:"required,min=10,max=5000" label:"Description"`
	Capacity     int    `json:"capacity" validate:"required,min=1" label:"Capacity"`
}

// HandleCreate processes POST /institutions.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
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

	created, err := h.Store.Create(ctx, models.Institution{
		Name:         in.Name,
		Type:         in.Type,
		Address:      in.Address,
		City:         in.City,
		Region:       in.Region,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Description:  htmlsanitize.Plain(in.Description),
		Capacity:     in.Capacity,
	})
	if err != nil {
		h.Log.Error("create institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create institution")
		return
	}

	if _, _, actorID, ok := authz.UserCtx(r); ok {
		h.Audit.InstitutionEvent(ctx, r, audit.EventInstitutionCreated, actorID, created.ID)
	}

	httpjson.Write(w, http.StatusCreated, toResponse(created))
}
