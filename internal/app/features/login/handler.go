// Package login implements credential sign-in. Failures are reported with
// one generic message so the endpoint does not reveal which emails have
// accounts; the audit log records the real reason.
package login

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/enrollhub/internal/app/store/audit"
	userstore "github.com/dalemusser/enrollhub/internal/app/store/users"
	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/inputval"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler is the feature-level entry point for sign-in.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger
	Audit    *auditlog.Logger
}

// NewHandler constructs a login handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger, auditLog *auditlog.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Sessions: sm,
		Log:      logger,
		Audit:    auditLog,
	}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// HandleLogin processes POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
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

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if err == mongo.ErrNoDocuments {
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserNotFound, in.Email, "no account for email")
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if !userstore.VerifyPassword(u, in.Password) {
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, in.Email, "password mismatch")
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.Sessions.Establish(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("establish session failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.Audit.LoginSuccess(ctx, r, u.ID, u.Email)

	httpjson.Write(w, http.StatusOK, userResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	})
}
