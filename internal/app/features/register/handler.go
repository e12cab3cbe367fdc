// Package register implements account creation. Anyone may register; new
// accounts always get the default user role, so the endpoint can never be
// used to mint admins.
package register

import (
	"context"
	"net/http"
	"time"

	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"github.com/dalemusser/enrollhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler is the feature-level entry point for registration.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
	Audit *auditlog.Logger
}

// NewHandler constructs a registration handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger, audit *auditlog.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
		Audit: audit,
	}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=3,max=100" label:"Name"`
	Email    string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password string `json:"password" validate:"required,min=8,max=128" label:"Password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// HandleRegister processes POST /auth/register.
//
// On success: 201 and the created user (no password hash).
// On duplicate email: 409.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(w, r, &in, maxBodyBytes); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		httpjson.ValidationError(w, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  models.RoleUser,
	}, in.Password)
	if err == userstore.ErrDuplicateEmail {
		httpjson.Error(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.Audit.UserRegistered(ctx, r, created.ID, created.Email)
	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("email", created.Email))

	httpjson.Write(w, http.StatusCreated, userResponse{
		ID:        created.ID.Hex(),
		Name:      created.Name,
		Email:     created.Email,
		Role:      created.Role,
		CreatedAt: created.CreatedAt,
	})
}
