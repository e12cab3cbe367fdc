package applications

import (
	"context"
	"net/http"

	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// listFilter builds the store filter from the query string and the caller's
// role. Non-admins are always scoped to their own email no matter what
// filters they supply.
func listFilter(r *http.Request) (applicationstore.Filter, error) {
	role, email, _, _ := authz.UserCtx(r)

	f := applicationstore.Filter{}
	q := r.URL.Query()

	if role == models.RoleAdmin {
		f.Email = q.Get("email")
		f.ApplicationID = q.Get("applicationId")
		if s := q.Get("status"); s != "" {
			if !models.IsValidStatus(s) {
				return f, errBadStatusFilter
			}
			f.Status = s
		}
		if inst := q.Get("institutionId"); inst != "" {
			oid, err := primitive.ObjectIDFromHex(inst)
			if err != nil {
				return f, errBadInstitutionFilter
			}
			f.InstitutionID = oid
		}
		return f, nil
	}

	f.Email = email
	return f, nil
}

// ServeList handles GET /applications.
// Authorization: RequireSignedIn middleware in routes.go.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Store.Find(ctx, filter)
	if err != nil {
		h.Log.Error("list applications failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load applications")
		return
	}

	httpjson.Write(w, http.StatusOK, toResponseList(apps))
}

// ServeView handles GET /applications/{id}: the application plus a joined
// institution summary. Owner (matching session email) or admin only.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid application id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Store.GetByID(ctx, id)
	if err == applicationstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "application not found")
		return
	}
	if err != nil {
		h.Log.Error("get application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load application")
		return
	}

	role, email, _, _ := authz.UserCtx(r)
	if role != models.RoleAdmin && email != app.Email {
		httpjson.Error(w, http.StatusForbidden, "access denied")
		return
	}

	resp := detailResponse{applicationResponse: toResponse(*app)}
	if inst, err := h.Institutions.GetByID(ctx, app.InstitutionID); err == nil {
		resp.Institution = summarize(inst)
	}

	httpjson.Write(w, http.StatusOK, resp)
}
