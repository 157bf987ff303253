// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/volunteerhub/internal/app/store/audit"
	"github.com/dalemusser/volunteerhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, refresh).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for admin mutations (volunteer/event/task CRUD, attendance).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// NewNopLogger returns a logger that drops every event. Handler tests use it.
func NewNopLogger() *Logger {
	return nil
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.TargetID != nil {
		fields = append(fields, zap.String("target_id", event.TargetID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, role, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Actor:     email,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"role": role,
		},
	})
}

// LoginFailedWrongPassword logs a failed login attempt. The attempted
// email goes in details rather than actor since it was never verified.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, role, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "invalid credentials",
		Details: map[string]string{
			"role":            role,
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginFailedRateLimit logs a login attempt blocked by rate limiting.
func (l *Logger) LoginFailedRateLimit(ctx context.Context, r *http.Request, role string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "rate limit exceeded",
		Details: map[string]string{
			"role": role,
		},
	})
}

// TokenRefreshed logs a successful refresh-token rotation.
func (l *Logger) TokenRefreshed(ctx context.Context, r *http.Request, role, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventTokenRefreshed,
		Actor:     email,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"role": role,
		},
	})
}

// RefreshRejected logs a refresh attempt with an invalid, revoked, or
// expired token.
func (l *Logger) RefreshRejected(ctx context.Context, r *http.Request, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventRefreshRejected,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: reason,
	})
}

// --- Admin Events ---

// entityMutation is the shared shape of the CRUD audit helpers.
func (l *Logger) entityMutation(ctx context.Context, r *http.Request, eventType, actor string, targetID primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Actor:     actor,
		TargetID:  &targetID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// VolunteerCreated logs creation of a volunteer record.
func (l *Logger) VolunteerCreated(ctx context.Context, r *http.Request, actor string, volunteerID primitive.ObjectID, email string) {
	l.entityMutation(ctx, r, audit.EventVolunteerCreated, actor, volunteerID, map[string]string{
		"email": email,
	})
}

// VolunteerUpdated logs a partial update of a volunteer record.
func (l *Logger) VolunteerUpdated(ctx context.Context, r *http.Request, actor string, volunteerID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventVolunteerUpdated, actor, volunteerID, nil)
}

// VolunteerDeleted logs deletion of a volunteer record.
func (l *Logger) VolunteerDeleted(ctx context.Context, r *http.Request, actor string, volunteerID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventVolunteerDeleted, actor, volunteerID, nil)
}

// EventCreated logs creation of an event record.
func (l *Logger) EventCreated(ctx context.Context, r *http.Request, actor string, eventID primitive.ObjectID, name string) {
	l.entityMutation(ctx, r, audit.EventEventCreated, actor, eventID, map[string]string{
		"name": name,
	})
}

// EventUpdated logs a partial update of an event record.
func (l *Logger) EventUpdated(ctx context.Context, r *http.Request, actor string, eventID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventEventUpdated, actor, eventID, nil)
}

// EventDeleted logs deletion of an event record.
func (l *Logger) EventDeleted(ctx context.Context, r *http.Request, actor string, eventID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventEventDeleted, actor, eventID, nil)
}

// TaskCreated logs creation of a task record.
func (l *Logger) TaskCreated(ctx context.Context, r *http.Request, actor string, taskID primitive.ObjectID, title string) {
	l.entityMutation(ctx, r, audit.EventTaskCreated, actor, taskID, map[string]string{
		"title": title,
	})
}

// TaskUpdated logs a partial update of a task record.
func (l *Logger) TaskUpdated(ctx context.Context, r *http.Request, actor string, taskID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventTaskUpdated, actor, taskID, nil)
}

// TaskDeleted logs deletion of a task record.
func (l *Logger) TaskDeleted(ctx context.Context, r *http.Request, actor string, taskID primitive.ObjectID) {
	l.entityMutation(ctx, r, audit.EventTaskDeleted, actor, taskID, nil)
}

// AttendanceRecorded logs a committed bulk attendance batch.
func (l *Logger) AttendanceRecorded(ctx context.Context, r *http.Request, actor string, recordCount int, volunteersAccrued int) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventAttendanceRecorded,
		Actor:     actor,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"records":            strconv.Itoa(recordCount),
			"volunteers_accrued": strconv.Itoa(volunteersAccrued),
		},
	})
}
