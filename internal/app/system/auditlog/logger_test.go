package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/store/audit"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	logger := auditlog.NewNopLogger()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, "admin", "admin@akshar.com")
	logger.VolunteerCreated(ctx, req, "admin@akshar.com", primitive.NewObjectID(), "asha@example.com")
	logger.AttendanceRecorded(ctx, req, "admin@akshar.com", 3, 2)
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "off",
		Admin: "off",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "db",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Actor:     "admin@akshar.com",
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Actor != "admin@akshar.com" {
		t.Errorf("actor: got %q", events[0].Actor)
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "log",
		Admin: "log",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})

	// zap only: nothing lands in the DB
	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no DB events when config is 'log'")
	}
}

func TestLogger_Log_PerCategoryConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Auth to DB, admin off.
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "off",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})
	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventVolunteerCreated,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != audit.CategoryAuth {
		t.Errorf("category: got %q, want %q", events[0].Category, audit.CategoryAuth)
	}
}

func TestLogger_AuthHelpers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})

	req := httptest.NewRequest("POST", "/api/admin/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("User-Agent", "TestBrowser/1.0")

	logger.LoginSuccess(ctx, req, "admin", "admin@akshar.com")
	logger.LoginFailedWrongPassword(ctx, req, "admin", "attacker@example.com")
	logger.LoginFailedRateLimit(ctx, req, "admin")
	logger.TokenRefreshed(ctx, req, "admin", "admin@akshar.com")
	logger.RefreshRejected(ctx, req, "invalid refresh token")

	tests := []struct {
		eventType string
		success   bool
	}{
		{audit.EventLoginSuccess, true},
		{audit.EventLoginFailedWrongPassword, false},
		{audit.EventLoginFailedRateLimit, false},
		{audit.EventTokenRefreshed, true},
		{audit.EventRefreshRejected, false},
	}
	for _, tt := range tests {
		events, err := store.Query(ctx, audit.QueryFilter{EventType: tt.eventType})
		if err != nil {
			t.Fatalf("Query(%s) failed: %v", tt.eventType, err)
		}
		if len(events) != 1 {
			t.Errorf("%s: expected 1 event, got %d", tt.eventType, len(events))
			continue
		}
		if events[0].Success != tt.success {
			t.Errorf("%s: success = %v, want %v", tt.eventType, events[0].Success, tt.success)
		}
		if events[0].IP != "203.0.113.7" {
			t.Errorf("%s: ip = %q, want proxy client address", tt.eventType, events[0].IP)
		}
	}

	// The attempted email of a failed login is a detail, not the actor.
	events, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventLoginFailedWrongPassword})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if events[0].Actor != "" {
		t.Errorf("failed login actor should be empty, got %q", events[0].Actor)
	}
	if events[0].Details["attempted_email"] != "attacker@example.com" {
		t.Errorf("attempted_email detail: got %q", events[0].Details["attempted_email"])
	}
}

func TestLogger_AdminHelpers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})

	req := httptest.NewRequest("POST", "/api/volunteers", nil)
	targetID := primitive.NewObjectID()

	logger.VolunteerCreated(ctx, req, "admin@akshar.com", targetID, "asha@example.com")
	logger.EventUpdated(ctx, req, "admin@akshar.com", targetID)
	logger.TaskDeleted(ctx, req, "admin@akshar.com", targetID)
	logger.AttendanceRecorded(ctx, req, "admin@akshar.com", 3, 2)

	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 admin events, got %d", len(events))
	}

	created, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventVolunteerCreated})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 volunteer_created event, got %d", len(created))
	}
	if created[0].TargetID == nil || *created[0].TargetID != targetID {
		t.Error("expected TargetID on volunteer_created")
	}
	if created[0].Actor != "admin@akshar.com" {
		t.Errorf("actor: got %q", created[0].Actor)
	}

	batch, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventAttendanceRecorded})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("expected 1 attendance_recorded event, got %d", len(batch))
	}
	if batch[0].Details["records"] != "3" || batch[0].Details["volunteers_accrued"] != "2" {
		t.Errorf("batch details: got %v", batch[0].Details)
	}
}
