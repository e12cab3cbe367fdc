package applications

import (
	"time"

	"github.com/dalemusser/enrollhub/internal/domain/models"
)

// applicationResponse is the JSON shape for one application in listings.
type applicationResponse struct {
	ID            string            `json:"id"`
	ApplicationID string            `json:"applicationId"`
	ApplicantName string            `json:"applicantName"`
	BirthDate     string            `json:"birthDate"` // YYYY-MM-DD
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	InstitutionID string            `json:"institutionId"`
	Documents     []models.Document `json:"documents"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// institutionSummary is the joined subset shown on detail and status views.
type institutionSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// detailResponse is an application plus its institution summary.
type detailResponse struct {
	applicationResponse
	Institution *institutionSummary `json:"institution"`
}

func toResponse(app models.Application) applicationResponse {
	docs := app.Documents
	if docs == nil {
		docs = []models.Document{}
	}
	return applicationResponse{
		ID:            app.ID.Hex(),
		ApplicationID: app.ApplicationID,
		ApplicantName: app.ApplicantName,
		BirthDate:     app.BirthDate.Format("2006-01-02"),
		Email:         app.Email,
		Phone:         app.Phone,
		InstitutionID: app.InstitutionID.Hex(),
		Documents:     docs,
		Status:        app.Status,
		Notes:         app.Notes,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func toResponseList(apps []models.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toResponse(app))
	}
	return out
}

func summarize(inst *models.Institution) *institutionSummary {
	if inst == nil {
		return nil
	}
	return &institutionSummary{
		ID:      inst.ID.Hex(),
		Name:    inst.Name,
		Type:    inst.Type,
		Address: inst.Address,
		City:    inst.City,
	}
}
