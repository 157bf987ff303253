package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

// AdminIdentity returns the identity an admin bearer token resolves to.
func AdminIdentity() auth.Identity {
	return auth.Identity{
		Role:    models.RoleAdmin,
		Subject: "admin@akshar.com",
	}
}

// VolunteerIdentity returns the identity a volunteer bearer token resolves to.
func VolunteerIdentity() auth.Identity {
	return auth.Identity{
		Role:    models.RoleVolunteer,
		Subject: "volunteer@akshar.com",
	}
}

// WithIdentity adds an identity to the request context, bypassing the
// bearer-token middleware.
func WithIdentity(r *http.Request, id auth.Identity) *http.Request {
	return auth.WithTestIdentity(r, &id)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with an identity in context.
func NewAuthenticatedRequest(method, target string, id auth.Identity) *http.Request {
	return WithIdentity(httptest.NewRequest(method, target, nil), id)
}

// NewJSONRequest creates an HTTP request whose body is the JSON
// encoding of v, with an identity in context.
func NewJSONRequest(t *testing.T, method, target string, v any, id auth.Identity) *http.Request {
	t.Helper()

	buf, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return WithIdentity(req, id)
}

// DecodeJSON decodes a response body into v, failing the test on error.
func DecodeJSON(t *testing.T, body io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
