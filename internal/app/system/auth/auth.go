// Package auth issues and verifies the bearer tokens that identify API
// callers. Two roles exist (admin, volunteer); each successful login
// mints a short-lived access token and a longer-lived refresh token.
// Refresh tokens carry a JTI that is tracked server-side so rotation can
// revoke the old token.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes, overridable from app config.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Token types, carried in the "typ" claim so an access token can never
// be replayed against the refresh endpoint or vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrWrongTokenUse = errors.New("token not valid for this operation")
)

// Claims is what a verified token asserts about its bearer.
type Claims struct {
	Role    string `json:"role"`
	Type    string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies tokens with a shared HS256 secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a TokenManager. Zero TTLs fall back to the
// defaults above.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

func (tm *TokenManager) mint(role, subject, jti, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// MintAccess issues an access token for the given role and subject.
func (tm *TokenManager) MintAccess(role, subject string) (string, error) {
	return tm.mint(role, subject, "", TypeAccess, tm.accessTTL)
}

// MintRefresh issues a refresh token whose JTI the caller records in the
// auth session store.
func (tm *TokenManager) MintRefresh(role, subject, jti string) (string, error) {
	return tm.mint(role, subject, jti, TypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) parse(tokenString, wantType string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, ErrWrongTokenUse
	}
	return &claims, nil
}

// ParseAccess verifies an access token and returns its claims.
func (tm *TokenManager) ParseAccess(tokenString string) (*Claims, error) {
	return tm.parse(tokenString, TypeAccess)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(tokenString string) (*Claims, error) {
	return tm.parse(tokenString, TypeRefresh)
}
