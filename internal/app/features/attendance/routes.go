// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/attendance.
// Reads need any authenticated caller; bulk marking needs admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authz.RequireAuthenticated)
		r.Get("/", h.List)
	})

	r.Group(func(r chi.Router) {
		r.Use(authz.RequireAdmin)
		r.Post("/bulk", h.MarkBulk)
	})

	return r
}
