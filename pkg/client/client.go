// Package client is a Go client for the VolunteerHub REST API.
//
// A Client carries one Session (access token, refresh token, role,
// expiry). Sessions are explicit values, never package state: two
// clients can hold two different logins in the same process. When the
// access token is close to expiry the client refreshes it through its
// TokenRefresher before sending the request; a 401 from the server
// clears the session so the caller can log in again.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is one authenticated login against the API.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         string // "admin" or "volunteer"
	ExpiresAt    time.Time
}

// Valid reports whether the session has a usable access token at time now.
func (s Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && now.Before(s.ExpiresAt)
}

// TokenRefresher exchanges a refresh token for a new session. The
// default implementation calls the API's own refresh endpoint; tests
// and embedders can inject their own.
type TokenRefresher interface {
	RefreshSession(ctx context.Context, refreshToken string) (Session, error)
}

// APIError is an error response from the service. Message carries the
// server's {"message": ...} body verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to one VolunteerHub deployment.
type Client struct {
	baseURL   string
	http      *http.Client
	refresher TokenRefresher

	// refreshWindow is how close to expiry the access token may get
	// before a request triggers a refresh first.
	refreshWindow time.Duration

	mu      sync.Mutex
	session Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRefresher replaces the default token refresher.
func WithRefresher(r TokenRefresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithRefreshWindow sets how early before expiry the client refreshes.
func WithRefreshWindow(d time.Duration) Option {
	return func(c *Client) { c.refreshWindow = d }
}

// New creates a client for the service at baseURL (e.g.
// "http://localhost:8080"). The client starts without a session; call
// LoginAdmin or LoginVolunteer, or install one with SetSession.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 30 * time.Second},
		refreshWindow: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.refresher == nil {
		c.refresher = &apiRefresher{c: c}
	}
	return c
}

// Session returns a copy of the current session.
func (c *Client) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// SetSession installs a previously saved session.
func (c *Client) SetSession(s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

// ClearSession drops the current session.
func (c *Client) ClearSession() {
	c.SetSession(Session{})
}

// ensureFresh refreshes the session if the access token is inside the
// refresh window. A session without a refresh token is left alone; the
// server will answer 401 and the caller can log in again.
func (c *Client) ensureFresh(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()

	if sess.RefreshToken == "" || time.Until(sess.ExpiresAt) > c.refreshWindow {
		return nil
	}

	fresh, err := c.refresher.RefreshSession(ctx, sess.RefreshToken)
	if err != nil {
		return err
	}
	fresh.Role = sess.Role
	c.SetSession(fresh)
	return nil
}

// do runs one API request. authed requests carry the bearer token and
// refresh it first when needed; a 401 clears the session.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}, authed bool) error {
	if authed {
		if err := c.ensureFresh(ctx); err != nil {
			return err
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if tok := c.Session().AccessToken; tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		if authed && resp.StatusCode == http.StatusUnauthorized {
			c.ClearSession()
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// tokenExpiry reads the exp claim out of a JWT without verifying it.
// The client has no signing key; verification is the server's job, the
// expiry is only used to schedule refreshes.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
