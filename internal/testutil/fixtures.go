package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateVolunteer inserts a test volunteer with the given name and email.
func (f *Fixtures) CreateVolunteer(ctx context.Context, name, email string) models.Volunteer {
	f.t.Helper()

	now := time.Now().UTC()
	v := models.Volunteer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Phone:     "555-0100",
		Address:   "1 Test Lane",
		Skills:    "testing",
		Status:    models.VolunteerActive,
		JoinDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("volunteers").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test volunteer: %v", err)
	}
	return v
}

// CreateVolunteerWithHours inserts a test volunteer that already has
// accrued hours.
func (f *Fixtures) CreateVolunteerWithHours(ctx context.Context, name, email string, hours float64) models.Volunteer {
	f.t.Helper()

	v := f.CreateVolunteer(ctx, name, email)
	v.Hours = hours
	if _, err := f.db.Collection("volunteers").UpdateOne(ctx,
		bson.M{"_id": v.ID}, bson.M{"$set": bson.M{"hours": hours}}); err != nil {
		f.t.Fatalf("failed to set test volunteer hours: %v", err)
	}
	return v
}

// CreateEvent inserts a test event with the given name, one week out.
func (f *Fixtures) CreateEvent(ctx context.Context, name string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Date:               now.Add(7 * 24 * time.Hour),
		Location:           "Test Hall",
		Description:        "fixture event",
		RequiredVolunteers: models.DefaultRequiredVolunteers,
		AssignedVolunteers: []primitive.ObjectID{},
		Status:             models.EventUpcoming,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreateTask inserts a test task assigning the volunteer to the event.
func (f *Fixtures) CreateTask(ctx context.Context, title string, eventID, volunteerID primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	tk := models.Task{
		ID:           primitive.NewObjectID(),
		EventID:      eventID,
		VolunteerID:  volunteerID,
		Title:        title,
		Description:  "fixture task",
		Status:       models.TaskPending,
		Priority:     models.PriorityMedium,
		AssignedDate: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, tk); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return tk
}

// CreateAttendance inserts a test attendance record.
func (f *Fixtures) CreateAttendance(ctx context.Context, volunteerID, eventID primitive.ObjectID, status string, hours float64) models.Attendance {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Attendance{
		ID:          primitive.NewObjectID(),
		VolunteerID: volunteerID,
		EventID:     eventID,
		Date:        now,
		Status:      status,
		Hours:       hours,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("attendance").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test attendance record: %v", err)
	}
	return a
}
