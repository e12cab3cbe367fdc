package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User represents an account that can sign in: applicants and admins.
//
// PasswordHash is a bcrypt hash and must never be serialized to JSON;
// handlers return userView projections instead of this struct.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	NameCI       string             `bson:"name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email"`   // stored lowercase; unique index
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"` // user | admin

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
