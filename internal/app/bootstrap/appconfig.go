// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where you put everything specific to YOUR application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret  string        // HS256 signing secret (must be strong in production)
	AccessTTL  time.Duration // Access-token lifetime
	RefreshTTL time.Duration // Refresh-token lifetime

	// Login credentials for the two fixed roles. A *_password_hash value
	// wins over the plaintext *_password, which exists for local
	// development only and is bcrypt-hashed at startup.
	AdminEmail            string
	AdminPassword         string
	AdminPasswordHash     string
	VolunteerEmail        string
	VolunteerPassword     string
	VolunteerPasswordHash string

	// Login rate limiting
	LoginRateLimit  int           // attempts allowed per window per role+IP
	LoginRateWindow time.Duration // window length

	// Audit logging settings: 'all' (db+log), 'db', 'log', or 'off'
	AuditLogAuth  string
	AuditLogAdmin string

	// SessionSweepInterval is how often the background worker purges
	// expired refresh sessions. Zero disables the worker.
	SessionSweepInterval time.Duration
}
