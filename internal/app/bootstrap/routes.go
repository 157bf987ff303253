// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"

	attendancefeature "github.com/dalemusser/volunteerhub/internal/app/features/attendance"
	auditeventsfeature "github.com/dalemusser/volunteerhub/internal/app/features/auditevents"
	authapifeature "github.com/dalemusser/volunteerhub/internal/app/features/authapi"
	eventsfeature "github.com/dalemusser/volunteerhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/volunteerhub/internal/app/features/health"
	tasksfeature "github.com/dalemusser/volunteerhub/internal/app/features/tasks"
	volunteersfeature "github.com/dalemusser/volunteerhub/internal/app/features/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/store/audit"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/authutil"
	"github.com/dalemusser/volunteerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// loginLimiter runs its cleanup goroutine for the life of the process;
// Shutdown stops it.
var loginLimiter *ratelimit.Limiter

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// VolunteerHub builds the token manager and audit logger, applies the
// bearer-token middleware globally, and mounts the API feature routers
// under /api plus the health endpoint at /health. Authorization itself
// happens inside each feature's route groups.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.VolunteerHubMongoDatabase

	tm := auth.NewTokenManager(appCfg.JWTSecret, appCfg.AccessTTL, appCfg.RefreshTTL)

	adminCreds, volunteerCreds, err := credentialSets(appCfg)
	if err != nil {
		logger.Error("credential setup failed", zap.Error(err))
		return nil, err
	}

	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	limiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	loginLimiter = limiter

	r := chi.NewRouter()

	// Global auth middleware: verifies a bearer access token if one is
	// presented and loads the caller's identity into the request context.
	r.Use(tm.LoadBearer)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.VolunteerHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	api := chi.NewRouter()

	volunteersHandler := volunteersfeature.NewHandler(db, auditLogger, logger)
	api.Mount("/volunteers", volunteersfeature.Routes(volunteersHandler))

	eventsHandler := eventsfeature.NewHandler(db, auditLogger, logger)
	api.Mount("/events", eventsfeature.Routes(eventsHandler))

	tasksHandler := tasksfeature.NewHandler(db, auditLogger, logger)
	api.Mount("/tasks", tasksfeature.Routes(tasksHandler))

	attendanceHandler := attendancefeature.NewHandler(deps.VolunteerHubMongoClient, db, auditLogger, logger)
	api.Mount("/attendance", attendancefeature.Routes(attendanceHandler))

	auditHandler := auditeventsfeature.NewHandler(db, logger)
	api.Mount("/audit", auditeventsfeature.Routes(auditHandler))

	// Login and refresh (public, rate limited)
	authHandler := authapifeature.NewHandler(db, tm, adminCreds, volunteerCreds, limiter, auditLogger, logger)
	api.Mount("/", authapifeature.Routes(authHandler))

	r.Mount("/api", api)

	return r, nil
}

// credentialSets builds the two login credential sets from config. A
// configured hash is used as-is; otherwise the plaintext dev password is
// hashed here so the rest of the app only ever sees bcrypt hashes.
func credentialSets(appCfg AppConfig) (admin, volunteer authutil.CredentialSet, err error) {
	adminHash := appCfg.AdminPasswordHash
	if adminHash == "" {
		if adminHash, err = authutil.HashPassword(appCfg.AdminPassword); err != nil {
			return admin, volunteer, fmt.Errorf("hash admin password: %w", err)
		}
	}
	volunteerHash := appCfg.VolunteerPasswordHash
	if volunteerHash == "" {
		if volunteerHash, err = authutil.HashPassword(appCfg.VolunteerPassword); err != nil {
			return admin, volunteer, fmt.Errorf("hash volunteer password: %w", err)
		}
	}

	admin = authutil.CredentialSet{Email: appCfg.AdminEmail, PasswordHash: adminHash}
	volunteer = authutil.CredentialSet{Email: appCfg.VolunteerEmail, PasswordHash: volunteerHash}
	return admin, volunteer, nil
}
