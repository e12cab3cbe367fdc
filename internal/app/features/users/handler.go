// Package users implements admin user management: listing accounts and
// changing roles. Role changes take effect on the target's next request
// because the session middleware re-reads the user record.
package users

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/authz"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Handler is the feature-level entry point for admin user management.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
	Audit *auditlog.Logger
}

// NewHandler constructs a users handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
		Audit: audit,
	}
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ServeList handles GET /admin/users.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load users")
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	httpjson.Write(w, http.StatusOK, out)
}

type roleInput struct {
	Role string `json:"role" validate:"required,oneof=user admin" label:"Role"`
}

// HandleUpdateRole processes PUT /admin/users/{id}. Admins cannot demote
// themselves, which keeps at least this session able to undo mistakes.
// Authorization: RequireRole("admin") middleware in routes.go.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in roleInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}

	_, _, actorID, ok := authz.UserCtx(r)
	if ok && actorID == id && in.Role != models.RoleAdmin {
		httpjson.Error(w, http.StatusBadRequest, "cannot change your own role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	before, err := h.Users.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	if err := h.Users.UpdateRole(ctx, id, in.Role); err != nil {
		h.Log.Error("update role failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	if ok && before.Role != in.Role {
		h.Audit.RoleChanged(ctx, r, actorID, id, before.Role, in.Role)
	}

	after, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	httpjson.Write(w, http.StatusOK, toResponse(*after))
}
