// Package status implements the public application status check. No
// account is needed: applicants look up by the email they applied with
// and/or their application identifier.
package status

import (
	"context"
	"net/http"
	"strings"
	"time"

	applicationstore "github.com/dalemusser/enrollhub/internal/app/store/applications"
	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler is the feature-level entry point for status checks.
type Handler struct {
	Applications *applicationstore.Store
	Institutions *institutionstore.Store
	Log          *zap.Logger
}

// NewHandler constructs a status Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: applicationstore.New(db),
		Institutions: institutionstore.New(db),
		Log:          logger,
	}
}

type checkInput struct {
	Email         string `json:"email" validate:"omitempty,email" label:"Email"`
	ApplicationID string `json:"applicationId" validate:"omitempty,max=40" label:"Application ID"`
}

// statusEntry is one application in the status response. It exposes only
// what an applicant needs; admin notes and contact details stay private.
type statusEntry struct {
	ApplicationID string    `json:"applicationId"`
	ApplicantName string    `json:"applicantName"`
	Status        string    `json:"status"`
	Institution   string    `json:"institution,omitempty"`
	Type          string    `json:"institutionType,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HandleCheck processes POST /status. At least one of email or
// applicationId is required; all matches come back newest first.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var in checkInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}

	in.Email = strings.TrimSpace(in.Email)
	in.ApplicationID = strings.TrimSpace(in.ApplicationID)
	if in.Email == "" && in.ApplicationID == "" {
		httpjson.Error(w, http.StatusBadRequest, "email or applicationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Applications.StatusLookup(ctx, in.Email, in.ApplicationID)
	if err != nil {
		h.Log.Error("status lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "status check failed")
		return
	}
	if len(apps) == 0 {
		httpjson.Error(w, http.StatusNotFound, "no applications found")
		return
	}

	// Joined institution names, fetched once per distinct institution
	instNames := map[primitive.ObjectID][2]string{}
	entries := make([]statusEntry, 0, len(apps))
	for _, app := range apps {
		entry := statusEntry{
			ApplicationID: app.ApplicationID,
			ApplicantName: app.ApplicantName,
			Status:        app.Status,
			SubmittedAt:   app.CreatedAt,
			UpdatedAt:     app.UpdatedAt,
		}
		pair, seen := instNames[app.InstitutionID]
		if !seen {
			if inst, err := h.Institutions.GetByID(ctx, app.InstitutionID); err == nil {
				pair = [2]string{inst.Name, inst.Type}
			} else if err != institutionstore.ErrNotFound && err != mongo.ErrNoDocuments {
				h.Log.Warn("join institution failed", zap.Error(err))
			}
			instNames[app.InstitutionID] = pair
		}
		entry.Institution = pair[0]
		entry.Type = pair[1]
		entries = append(entries, entry)
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"applications": entries})
}
