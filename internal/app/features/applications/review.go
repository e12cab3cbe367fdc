package applications

import (
	"context"
	"errors"
	"net/http"

	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/mailer"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	errBadStatusFilter      = errors.New("unknown status filter")
	errBadInstitutionFilter = errors.New("invalid institution filter")
)

// reviewInput defines validation rules for an admin review update. Both
// fields are optional; notes use a pointer so an empty string clears them.
type reviewInput struct {
	Status string  `json:"status" validate:"omitempty,oneof=pending approved rejected" label:"Status"`
	Notes  *string `json:"notes" validate:"omitempty" label:"Notes"`
}

// HandleReview processes PUT /applications/{id}. Transitions are
// unrestricted beyond the admin gate; each one is audited, and the
// applicant is notified best-effort when the status changes.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var in reviewInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}
	if in.Status == "" && in.Notes == nil {
		httpjson.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if in.Notes != nil {
		if len(*in.Notes) > 5000 {
			httpjson.Error(w, http.StatusBadRequest, "notes must be at most 5000 characters")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	before, err := h.Store.GetByID(ctx, id)
	if err == applicationstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		h.Log.Error("load application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update application")
		return
	}

	if err := h.Store.UpdateStatusNotes(ctx, id, in.Status, in.Notes); err != nil {
		h.Log.Error("update application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update application")
		return
	}

	statusChanged := in.Status != "" && in.Status != before.Status
	if statusChanged {
		if _, _, actorID, ok := authz.UserCtx(r); ok {
			h.Audit.StatusChanged(ctx, r, actorID, id, before.Status, in.Status)
		}
		notes := before.Notes
		if in.Notes != nil {
			notes = *in.Notes
		}
		h.notifyApplicant(ctx, before, in.Status, notes)
	}

	after, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load application")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(*after))
}

// notifyApplicant sends the status-change email. Best-effort: failures are
// logged and never surfaced to the admin performing the review.
func (h *Handler) notifyApplicant(ctx context.Context, app *models.Application, newStatus, notes string) {
	instName := ""
	if inst, err := h.Institutions.GetByID(ctx, app.InstitutionID); err == nil {
		instName = inst.Name
	}

	email := mailer.BuildStatusEmail(mailer.StatusEmailData{
		SiteName:      h.SiteName,
		ApplicantName: app.ApplicantName,
		ApplicationID: app.ApplicationID,
		Institution:   instName,
		Status:        newStatus,
		Notes:         notes,
		StatusURL:     h.BaseURL + "/status",
	})
	email.To = app.Email

	if err := h.Mailer.Send(email); err != nil {
		h.Log.Warn("status notification failed",
			zap.String("application_id", app.ApplicationID),
			zap.Error(err))
	}
}
