// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
)

// Identity is what we inject into r.Context() for a verified caller.
type Identity struct {
	Role    string // admin | volunteer
	Subject string // login email
}

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified caller and a found flag.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	return id, ok
}

func withIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// WithTestIdentity injects an identity directly, bypassing token
// verification. For handler tests only.
func WithTestIdentity(r *http.Request, id *Identity) *http.Request {
	return withIdentity(r, id)
}

// LoadBearer verifies an Authorization: Bearer token if one is present
// and injects the Identity into context. A present-but-invalid token is
// rejected immediately with 401; requests without a token continue
// anonymously and are stopped later by the Require* middleware on gated
// routes.
func (tm *TokenManager) LoadBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apierr.Write(w, apierr.Auth("malformed authorization header"))
			return
		}

		claims, err := tm.ParseAccess(strings.TrimSpace(raw))
		if err != nil {
			apierr.Write(w, apierr.Auth("invalid or expired access token"))
			return
		}

		next.ServeHTTP(w, withIdentity(r, &Identity{
			Role:    claims.Role,
			Subject: claims.Subject,
		}))
	})
}
