// internal/app/features/authapi/handler.go

// Package authapi serves the login and token-refresh endpoints for the
// two fixed login roles. Credentials come from config, not from the
// volunteers collection: a volunteer document is a managed record, not
// a login account.
package authapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/volunteerhub/internal/app/store/authsessions"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/authutil"
	"github.com/dalemusser/volunteerhub/internal/app/system/normalize"
	"github.com/dalemusser/volunteerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

var validate = validator.New()

// Handler serves login and refresh.
type Handler struct {
	tm        *auth.TokenManager
	sessions  *authsessions.Store
	admin     authutil.CredentialSet
	volunteer authutil.CredentialSet
	limiter   *ratelimit.Limiter
	audit     *auditlog.Logger
	log       *zap.Logger
}

// NewHandler constructs the auth Handler.
func NewHandler(db *mongo.Database, tm *auth.TokenManager, admin, volunteer authutil.CredentialSet, limiter *ratelimit.Limiter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		tm:        tm,
		sessions:  authsessions.New(db),
		admin:     admin,
		volunteer: volunteer,
		limiter:   limiter,
		audit:     audit,
		log:       logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin handles POST /api/admin/login.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleAdmin, h.admin)
}

// VolunteerLogin handles POST /api/volunteer/login.
func (h *Handler) VolunteerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, models.RoleVolunteer, h.volunteer)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, role string, creds authutil.CredentialSet) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// Rate limit per role and source address so one role being attacked
	// does not lock out the other.
	key := role + ":" + ratelimit.ClientIP(r)
	if !h.limiter.Allow(key) {
		h.audit.LoginFailedRateLimit(ctx, r, role)
		webjson.Message(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("email and password are required"))
		return
	}

	if !creds.Matches(req.Email, req.Password) {
		h.audit.LoginFailedWrongPassword(ctx, r, role, req.Email)
		apierr.Write(w, apierr.Auth("invalid credentials"))
		return
	}
	h.limiter.Reset(key)

	subject := normalize.Email(creds.Email)
	pair, err := h.issuePair(ctx, role, subject)
	if err != nil {
		h.log.Error("issue token pair failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}

	h.audit.LoginSuccess(ctx, r, role, subject)
	h.log.Info("login", zap.String("role", role))
	webjson.Write(w, http.StatusOK, map[string]any{
		"token":         pair.access,
		"refresh_token": pair.refresh,
		role: map[string]string{
			"email": subject,
			"role":  role,
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /api/auth/refresh. The presented refresh token is
// rotated: its session is revoked and a new pair is issued, so a token
// can refresh at most once.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req refreshRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("refresh_token is required"))
		return
	}

	claims, err := h.tm.ParseRefresh(req.RefreshToken)
	if err != nil {
		h.audit.RefreshRejected(ctx, r, "invalid refresh token")
		apierr.Write(w, apierr.Auth("invalid refresh token"))
		return
	}

	sess, err := h.sessions.GetByJTI(ctx, claims.ID)
	if err != nil {
		h.audit.RefreshRejected(ctx, r, "unknown refresh token")
		apierr.Write(w, err)
		return
	}
	if !sess.Live(time.Now().UTC()) {
		// A revoked token showing up again usually means it leaked after
		// rotation. Kill every live session for the subject.
		if _, err := h.sessions.RevokeAllForSubject(ctx, sess.Subject); err != nil {
			h.log.Error("revoke sessions after refresh reuse failed", zap.Error(err))
		}
		h.audit.RefreshRejected(ctx, r, "revoked or expired refresh token")
		apierr.Write(w, apierr.Auth("refresh token no longer valid"))
		return
	}

	if err := h.sessions.Revoke(ctx, sess.JTI); err != nil {
		apierr.Write(w, err)
		return
	}
	pair, err := h.issuePair(ctx, sess.Role, sess.Subject)
	if err != nil {
		h.log.Error("issue token pair failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}

	h.audit.TokenRefreshed(ctx, r, sess.Role, sess.Subject)
	webjson.Write(w, http.StatusOK, map[string]string{
		"access_token":  pair.access,
		"refresh_token": pair.refresh,
	})
}

type tokenPair struct {
	access  string
	refresh string
}

// issuePair mints an access and refresh token and records the refresh
// session.
func (h *Handler) issuePair(ctx context.Context, role, subject string) (tokenPair, error) {
	access, err := h.tm.MintAccess(role, subject)
	if err != nil {
		return tokenPair{}, apierr.Storage(err)
	}
	jti := uuid.NewString()
	refresh, err := h.tm.MintRefresh(role, subject, jti)
	if err != nil {
		return tokenPair{}, apierr.Storage(err)
	}
	if _, err := h.sessions.Create(ctx, role, subject, jti, h.tm.RefreshTTL()); err != nil {
		return tokenPair{}, err
	}
	return tokenPair{access: access, refresh: refresh}, nil
}
