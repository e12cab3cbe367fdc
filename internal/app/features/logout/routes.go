package logout

import "github.com/go-chi/chi/v5"

// Routes mounts sign-out under the base path (typically "/auth/logout"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	return r
}
