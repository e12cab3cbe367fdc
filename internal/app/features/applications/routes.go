package applications

import (
	"github.com/dalemusser/enrollhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Application routes under the base path (typically
// "/applications" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public submission: applicants do not need an account
	r.Post("/", h.HandleSubmit)

	// Signed-in: list own (or all, for admins), view with ownership check
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
	})

	// Admin-only review and export
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))
		pr.Get("/export", h.HandleExport)
		pr.Put("/{id}", h.HandleReview)
	})

	return r
}
