// internal/app/system/authz/authz.go

// Package authz gates routes on the verified caller's role. The API
// fails closed: every mutating endpoint requires the admin role, and
// reads require any authenticated caller.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

// Role returns the caller's role (lowercased) and whether a verified
// identity is present.
func Role(r *http.Request) (string, bool) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		return "", false
	}
	return strings.ToLower(id.Role), true
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(r *http.Request) bool {
	role, ok := Role(r)
	return ok && role == models.RoleAdmin
}

// RequireAuthenticated rejects requests without a verified identity.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentIdentity(r); !ok {
			apierr.Write(w, apierr.Auth("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests unless the caller is an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			apierr.Write(w, apierr.Auth("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
