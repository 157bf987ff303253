package client

import (
	"context"
	"net/http"
)

// Identity is the logged-in principal returned by the login endpoints.
type Identity struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	Admin        *Identity `json:"admin,omitempty"`
	Volunteer    *Identity `json:"volunteer,omitempty"`
}

// LoginAdmin authenticates with the admin credential set and installs
// the resulting session on the client.
func (c *Client) LoginAdmin(ctx context.Context, email, password string) (Identity, error) {
	return c.login(ctx, "/api/admin/login", email, password)
}

// LoginVolunteer authenticates with the volunteer credential set and
// installs the resulting session on the client.
func (c *Client) LoginVolunteer(ctx context.Context, email, password string) (Identity, error) {
	return c.login(ctx, "/api/volunteer/login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (Identity, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, path, loginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return Identity{}, err
	}

	ident := resp.Admin
	if ident == nil {
		ident = resp.Volunteer
	}
	if ident == nil {
		ident = &Identity{}
	}

	c.SetSession(Session{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		Role:         ident.Role,
		ExpiresAt:    tokenExpiry(resp.Token),
	})
	return *ident, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// apiRefresher is the default TokenRefresher: it rotates the pair
// through the service's own refresh endpoint.
type apiRefresher struct {
	c *Client
}

func (r *apiRefresher) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	var resp refreshResponse
	err := r.c.do(ctx, http.MethodPost, "/api/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &resp, false)
	if err != nil {
		return Session{}, err
	}
	return Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    tokenExpiry(resp.AccessToken),
	}, nil
}
