package login

import (
	"github.com/dalemusser/enrollhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts sign-in under the base path (typically "/auth/login" from
// bootstrap). The rate limiter slows credential stuffing.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(limiter.Middleware).Post("/", h.HandleLogin)
	return r
}
