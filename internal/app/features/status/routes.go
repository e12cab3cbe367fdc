package status

import "github.com/go-chi/chi/v5"

// Routes mounts the public status check (typically at "/status" from
// bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCheck)
	return r
}
