package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/features/attendance"
	volunteerstore "github.com/dalemusser/volunteerhub/internal/app/store/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*attendance.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := attendance.NewHandler(db.Client(), db, auditlog.NewNopLogger(), zap.NewNop())
	return h, testutil.NewFixtures(t, db), db
}

func TestMarkBulk_AccruesAndReturnsRecords(t *testing.T) {
	h, fx, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vA := fx.CreateVolunteer(ctx, "Asha Patel", "asha@example.com")
	vB := fx.CreateVolunteer(ctx, "Bharat Shah", "bharat@example.com")
	ev := fx.CreateEvent(ctx, "Food Drive")

	body := map[string]any{
		"records": []map[string]any{
			{"volunteerId": vA.ID.Hex(), "eventId": ev.ID.Hex(), "status": "present", "hours": 4},
			{"volunteerId": vB.ID.Hex(), "eventId": ev.ID.Hex(), "status": "absent", "hours": 3},
		},
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/attendance/bulk", body, testutil.AdminIdentity())
	rec := httptest.NewRecorder()

	h.MarkBulk(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created []models.Attendance
	testutil.DecodeJSON(t, rec.Body, &created)
	if len(created) != 2 {
		t.Errorf("created records: got %d, want 2", len(created))
	}
	for _, c := range created {
		if c.ID.IsZero() {
			t.Error("created record has no id")
		}
		if c.Date.IsZero() {
			t.Error("created record date was not defaulted")
		}
	}

	vs := volunteerstore.New(db)
	gotA, err := vs.GetByID(ctx, vA.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if gotA.Hours != 4 {
		t.Errorf("present volunteer hours: got %v, want 4", gotA.Hours)
	}
	gotB, err := vs.GetByID(ctx, vB.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if gotB.Hours != 0 {
		t.Errorf("absent volunteer hours: got %v, want 0", gotB.Hours)
	}
}

func TestMarkBulk_RejectsWholeBatch(t *testing.T) {
	h, fx, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := fx.CreateVolunteer(ctx, "Chitra Rao", "chitra@example.com")
	ev := fx.CreateEvent(ctx, "Cleanup Day")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"no records", map[string]any{"records": []map[string]any{}}, http.StatusBadRequest},
		{"unknown volunteer", map[string]any{"records": []map[string]any{
			{"volunteerId": v.ID.Hex(), "eventId": ev.ID.Hex(), "status": "present", "hours": 2},
			{"volunteerId": primitive.NewObjectID().Hex(), "eventId": ev.ID.Hex(), "status": "present", "hours": 2},
		}}, http.StatusNotFound},
		{"bad status", map[string]any{"records": []map[string]any{
			{"volunteerId": v.ID.Hex(), "eventId": ev.ID.Hex(), "status": "late", "hours": 2},
		}}, http.StatusBadRequest},
		{"negative hours", map[string]any{"records": []map[string]any{
			{"volunteerId": v.ID.Hex(), "eventId": ev.ID.Hex(), "status": "present", "hours": -1},
		}}, http.StatusBadRequest},
		{"malformed id", map[string]any{"records": []map[string]any{
			{"volunteerId": "nope", "eventId": ev.ID.Hex(), "status": "present", "hours": 2},
		}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/attendance/bulk", tt.body, testutil.AdminIdentity())
			rec := httptest.NewRecorder()
			h.MarkBulk(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	// Nothing from any rejected batch may have landed.
	n, err := db.Collection("attendance").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("attendance rows after rejected batches: got %d, want 0", n)
	}
}

func TestList_ExpandsReferences(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := fx.CreateVolunteer(ctx, "Deepa Iyer", "deepa@example.com")
	ev := fx.CreateEvent(ctx, "Health Camp")
	fx.CreateAttendance(ctx, v.ID, ev.ID, models.AttendancePresent, 3)

	req := testutil.NewAuthenticatedRequest("GET", "/api/attendance", testutil.VolunteerIdentity())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got []models.ExpandedAttendance
	testutil.DecodeJSON(t, rec.Body, &got)
	if len(got) != 1 {
		t.Fatalf("rows: got %d, want 1", len(got))
	}
	if got[0].Volunteer == nil || got[0].Volunteer.Name != "Deepa Iyer" {
		t.Errorf("volunteer not joined in: %+v", got[0].Volunteer)
	}
	if got[0].Event == nil || got[0].Event.Name != "Health Camp" {
		t.Errorf("event not joined in: %+v", got[0].Event)
	}
}

func TestList_ToleratesDanglingReferences(t *testing.T) {
	h, fx, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := fx.CreateVolunteer(ctx, "Esha Nair", "esha@example.com")
	ev := fx.CreateEvent(ctx, "Gala")
	fx.CreateAttendance(ctx, v.ID, ev.ID, models.AttendancePresent, 2)

	if _, err := db.Collection("volunteers").DeleteOne(ctx, map[string]any{"_id": v.ID}); err != nil {
		t.Fatalf("DeleteOne failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/attendance", testutil.VolunteerIdentity())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var got []models.ExpandedAttendance
	testutil.DecodeJSON(t, rec.Body, &got)
	if len(got) != 1 {
		t.Fatalf("rows: got %d, want 1", len(got))
	}
	if got[0].Volunteer != nil {
		t.Errorf("deleted volunteer should be nil, got %+v", got[0].Volunteer)
	}
	if got[0].Event == nil {
		t.Error("event side should still be joined in")
	}
}

func TestRoutes_Authorization(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	v := fx.CreateVolunteer(ctx, "Farah Khan", "farah@example.com")
	ev := fx.CreateEvent(ctx, "Gated Event")
	router := attendance.Routes(h)

	body := map[string]any{
		"records": []map[string]any{
			{"volunteerId": v.ID.Hex(), "eventId": ev.ID.Hex(), "status": "present", "hours": 1},
		},
	}

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"anonymous list rejected", testutil.NewRequest("GET", "/"), http.StatusUnauthorized},
		{"volunteer list allowed", testutil.NewAuthenticatedRequest("GET", "/", testutil.VolunteerIdentity()), http.StatusOK},
		{"volunteer bulk rejected", testutil.NewJSONRequest(t, "POST", "/bulk", body, testutil.VolunteerIdentity()), http.StatusUnauthorized},
		{"admin bulk allowed", testutil.NewJSONRequest(t, "POST", "/bulk", body, testutil.AdminIdentity()), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.req)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
