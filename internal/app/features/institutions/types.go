package institutions

import (
	"time"

	"github.com/dalemusser/enrollhub/internal/domain/models"
)

// institutionResponse is the JSON shape for one institution.
type institutionResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Region       string    `json:"region"`
	ContactPhone string    `json:"contactPhone"`
	ContactEmail string    `json:"contactEmail"`
	Description  string    `json:"description"`
	Capacity     int       `json:"capacity"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toResponse(inst models.Institution) institutionResponse {
	return institutionResponse{
		ID:           inst.ID.Hex(),
		Name:         inst.Name,
		Type:         inst.Type,
		Address:      inst.Address,
		City:         inst.City,
		Region:       inst.Region,
		ContactPhone: inst.ContactPhone,
		ContactEmail: inst.ContactEmail,
		Description:  inst.Description,
		Capacity:     inst.Capacity,
		IsActive:     inst.IsActive,
		CreatedAt:    inst.CreatedAt,
		UpdatedAt:    inst.UpdatedAt,
	}
}

func toResponseList(insts []models.Institution) []institutionResponse {
	out := make([]institutionResponse, 0, len(insts))
	for _, inst := range insts {
		out = append(out, toResponse(inst))
	}
	return out
}
