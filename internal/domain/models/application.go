package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// IsValidStatus reports whether s is a known application status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is an uploaded file attached to an application. The URL is an
// opaque reference returned by the upload endpoint; it is stored verbatim
// and never parsed or dereferenced server-side.
type Document struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
}

// Application is a submitted application to an institution.
//
// After creation the record is immutable except for Status and Notes, which
// only an admin may change. ApplicationID is the human-readable identifier
// shown to applicants (e.g. APP-493021-0042); it is assigned exactly once at
// creation and guarded by a unique index.
type Application struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicantName string             `bson:"applicant_name"`
	BirthDate     time.Time          `bson:"birth_date"`
	Email         string             `bson:"email"` // stored lowercase
	Phone         string             `bson:"phone"`
	InstitutionID primitive.ObjectID `bson:"institution_id"`
	Documents     []Document         `bson:"documents"`
	Status        string             `bson:"status"` // pending | approved | rejected
	Notes         string             `bson:"notes"`
	ApplicationID string             `bson:"application_id"` // unique index

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
