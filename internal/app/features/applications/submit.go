package applications

import (
	"context"
	"net/http"
	"time"

	institutionstore "github.com/dalemusser/enrollhub/internal/app/store/institutions"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// documentInput is one uploaded-file reference attached at submission.
// The URL comes from the upload endpoint and is stored verbatim.
type documentInput struct {
	Name string `json:"name" validate:"required,max=255" label:"Document name"`
	URL  string `json:"url" validate:"required,max=2000" label:"Document URL"`
	Type string `json:"type" validate:"max=100" label:"Document type"`
}

// submitInput defines validation rules for a new application.
type submitInput struct {
	ApplicantName string          `json:"applicantName" validate:"required,min=3,max=100" label:"Applicant name"`
	BirthDate     string          `json:"birthDate" validate:"required,datetime=2006-01-02" label:"Birth date"`
	Email         string          `json:"email" validate:"required,email,max=254" label:"Email"`
	Phone         string          `json:"phone" validate:"required,min=5,max=30" label:"Phone"`
	InstitutionID string          `json:"institutionId" validate:"required" label:"Institution"`
	Documents     []documentInput `json:"documents" validate:"omitempty,max=20,dive" label:"Documents"`
}

// HandleSubmit processes POST /applications. Submission is public so
// applicants do not need an account; the application email is the handle
// for later status checks.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in submitInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}

	instID, err := primitive.ObjectIDFromHex(in.InstitutionID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "institution not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Institutions.GetByID(ctx, instID); err != nil {
		if err == institutionstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "institution not found")
			return
		}
		h.Log.Error("resolve institution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}

	birthDate, _ := time.Parse("2006-01-02", in.BirthDate)
	docs := make([]models.Document, 0, len(in.Documents))
	for _, d := range in.Documents {
		docs = append(docs, models.Document{Name: d.Name, URL: d.URL, Type: d.Type})
	}

	created, err := h.Store.Create(ctx, models.Application{
		ApplicantName: in.ApplicantName,
		BirthDate:     birthDate,
		Email:         in.Email,
		Phone:         in.Phone,
		InstitutionID: instID,
		Documents:     docs,
	})
	if err != nil {
		h.Log.Error("create application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}

	h.Log.Info("application submitted",
		zap.String("application_id", created.ApplicationID),
		zap.String("institution_id", instID.Hex()))

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"success":       true,
		"applicationId": created.ApplicationID,
	})
}
