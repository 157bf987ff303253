// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devJWTSecret is the development fallback. ValidateConfig refuses it
// when the core env is prod.
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for VolunteerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: VOLUNTEERHUB_MONGO_URI, VOLUNTEERHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "volunteer_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Token configuration
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HS256 signing secret (must be strong in production)"},
	{Name: "access_ttl", Default: "15m", Desc: "Access-token lifetime (e.g., 15m, 1h)"},
	{Name: "refresh_ttl", Default: "168h", Desc: "Refresh-token lifetime (e.g., 168h for 7 days)"},

	// Login credentials. The plaintext defaults match the seeded demo
	// accounts and exist for local development only.
	{Name: "admin_email", Default: "admin@akshar.com", Desc: "Admin login email"},
	{Name: "admin_password", Default: "admin123", Desc: "Admin login password (dev only; prefer admin_password_hash)"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash of the admin password (overrides admin_password)"},
	{Name: "volunteer_email", Default: "volunteer@akshar.com", Desc: "Volunteer login email"},
	{Name: "volunteer_password", Default: "volunteer123", Desc: "Volunteer login password (dev only; prefer volunteer_password_hash)"},
	{Name: "volunteer_password_hash", Default: "", Desc: "bcrypt hash of the volunteer password (overrides volunteer_password)"},

	// Login rate limiting
	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts allowed per window per role and IP"},
	{Name: "login_rate_window", Default: "1m", Desc: "Login rate-limit window (e.g., 1m, 30s)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Background maintenance
	{Name: "session_sweep_interval", Default: "1h", Desc: "How often expired refresh sessions are purged (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VOLUNTEERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VOLUNTEERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:  appValues.String("jwt_secret"),
		AccessTTL:  appValues.Duration("access_ttl", auth.DefaultAccessTTL),
		RefreshTTL: appValues.Duration("refresh_ttl", auth.DefaultRefreshTTL),

		AdminEmail:            appValues.String("admin_email"),
		AdminPassword:         appValues.String("admin_password"),
		AdminPasswordHash:     appValues.String("admin_password_hash"),
		VolunteerEmail:        appValues.String("volunteer_email"),
		VolunteerPassword:     appValues.String("volunteer_password"),
		VolunteerPasswordHash: appValues.String("volunteer_password_hash"),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", time.Minute),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		SessionSweepInterval: appValues.Duration("session_sweep_interval", time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// VolunteerHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and refuses the built-in
// development secret and passwords in production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTSecret == devJWTSecret {
			return fmt.Errorf("jwt_secret must be changed from the development default in production")
		}
		if appCfg.AdminPasswordHash == "" || appCfg.VolunteerPasswordHash == "" {
			return fmt.Errorf("admin_password_hash and volunteer_password_hash are required in production")
		}
	}

	if appCfg.LoginRateLimit <= 0 {
		return fmt.Errorf("login_rate_limit must be > 0")
	}

	return nil
}
