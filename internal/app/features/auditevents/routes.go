// internal/app/features/auditevents/routes.go
package auditevents

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/audit. The audit
// trail is admin-only, reads included.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authz.RequireAdmin)
		r.Get("/", h.List)
		r.Get("/failed-logins", h.FailedLogins)
	})

	return r
}
