package indexes_test

import (
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/indexes"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func indexNamesFor(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_CreatesVolunteerIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNamesFor(t, db, "volunteers")
	expectedIndexes := []string{
		"uniq_volunteers_email",
		"idx_volunteers_created",
		"idx_volunteers_status_created__id",
	}
	for _, name := range expectedIndexes {
		if !names[name] {
			t.Errorf("expected index %q to exist on volunteers collection", name)
		}
	}
}

func TestEnsureAll_CreatesEventIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNamesFor(t, db, "events")
	expectedIndexes := []string{
		"idx_events_created",
		"idx_events_date",
		"idx_events_status_date__id",
	}
	for _, name := range expectedIndexes {
		if !names[name] {
			t.Errorf("expected index %q to exist on events collection", name)
		}
	}
}

func TestEnsureAll_CreatesTaskIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNamesFor(t, db, "tasks")
	expectedIndexes := []string{
		"idx_tasks_created",
		"idx_tasks_event_created",
		"idx_tasks_volunteer_created",
		"idx_tasks_status_due__id",
	}
	for _, name := range expectedIndexes {
		if !names[name] {
			t.Errorf("expected index %q to exist on tasks collection", name)
		}
	}
}

func TestEnsureAll_CreatesAttendanceIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNamesFor(t, db, "attendance")
	expectedIndexes := []string{
		"idx_attendance_date",
		"idx_attendance_volunteer_date",
		"idx_attendance_event_date",
	}
	for _, name := range expectedIndexes {
		if !names[name] {
			t.Errorf("expected index %q to exist on attendance collection", name)
		}
	}
}

func TestEnsureAll_CreatesAuthSessionIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNamesFor(t, db, "auth_sessions")
	expectedIndexes := []string{
		"uniq_authsessions_jti",
		"idx_authsessions_subject_created",
		"ttl_authsessions_expires",
	}
	for _, name := range expectedIndexes {
		if !names[name] {
			t.Errorf("expected index %q to exist on auth_sessions collection", name)
		}
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Run EnsureAll to create indexes
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Insert a volunteer with an email
	_, err = db.Collection("volunteers").InsertOne(ctx, bson.M{"email": "dup@example.com", "name": "First"})
	if err != nil {
		t.Fatalf("Insert volunteer failed: %v", err)
	}

	// Try to insert another volunteer with the same email - should fail
	_, err = db.Collection("volunteers").InsertOne(ctx, bson.M{"email": "dup@example.com", "name": "Second"})
	if err == nil {
		t.Error("expected duplicate key error for unique index on volunteers.email")
	}
}
