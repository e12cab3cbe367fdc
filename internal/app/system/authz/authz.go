// Package authz provides role predicates over the session user resolved by
// the auth middleware.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), email, Mongo ObjectID, and
// a found flag. If no user is present or the stored ID is malformed it
// returns "visitor", "", NilObjectID, false. ok=true always means a valid,
// authenticated user.
func UserCtx(r *http.Request) (role string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Email, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// Email returns the caller's normalized email and whether a user is present.
func Email(r *http.Request) (string, bool) {
	_, email, _, ok := UserCtx(r)
	return strings.ToLower(email), ok
}
