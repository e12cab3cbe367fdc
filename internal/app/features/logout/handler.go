// Package logout terminates the current session.
package logout

import (
	"context"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/system/auditlog"
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/dalemusser/enrollhub/internal/app/system/httpjson"
	"github.com/dalemusser/enrollhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for sign-out.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
	Audit    *auditlog.Logger
}

// NewHandler constructs a logout handler.
func NewHandler(sm *auth.SessionManager, logger *zap.Logger, auditLog *auditlog.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger, Audit: auditLog}
}

// HandleLogout processes POST /auth/logout. Logging out without a session
// is not an error; the cookie is cleared either way.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			defer cancel()
			h.Audit.Logout(ctx, r, oid)
		}
	}

	if err := h.Sessions.Clear(w, r); err != nil {
		h.Log.Warn("clear session failed", zap.Error(err))
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"success": true})
}
