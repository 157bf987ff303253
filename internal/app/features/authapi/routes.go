// internal/app/features/authapi/routes.go
package authapi

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api. Login and refresh
// are public; the rate limiter guards the login endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/admin/login", h.AdminLogin)
	r.Post("/volunteer/login", h.VolunteerLogin)
	r.Post("/auth/refresh", h.Refresh)
	return r
}
