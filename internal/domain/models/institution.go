package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Institution types.
const (
	InstitutionKindergarten = "kindergarten"
	InstitutionSchool       = "school"
	InstitutionCollege      = "college"
)

// IsValidInstitutionType reports whether t is a known institution type.
func IsValidInstitutionType(t string) bool {
	switch t {
	case InstitutionKindergarten, InstitutionSchool, InstitutionCollege:
		return true
	}
	return false
}

// Institution is an educational institution that accepts applications.
//
// Institutions are never hard-deleted: "deletion" flips IsActive to false so
// applications that reference the institution stay resolvable.
type Institution struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	NameCI       string             `bson:"name_ci"` // lowercase, diacritics-stripped
	Type         string             `bson:"type"`    // kindergarten | school | college
	Address      string             `bson:"address"`
	City         string             `bson:"city"`
	Region       string             `bson:"region"`
	ContactPhone string             `bson:"contact_phone"`
	ContactEmail string             `bson:"contact_email"` // stored lowercase
	Description  string             `bson:"description"`
	Capacity     int                `bson:"capacity"` // informational only, never decremented
	IsActive     bool               `bson:"is_active"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
