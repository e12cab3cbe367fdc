package register

import (
	"github.com/dalemusser/enrollhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts registration under the base path (typically "/auth/register"
// from bootstrap). The rate limiter slows automated account creation.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(limiter.Middleware).Post("/", h.HandleRegister)
	return r
}
