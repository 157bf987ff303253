// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/normalize"
	"github.com/dalemusser/volunteerhub/internal/app/system/sanitize"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the events collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// List returns all events sorted by sortField descending; empty means
// newest-created first.
func (s *Store) List(ctx context.Context, sortField string) ([]models.Event, error) {
	if sortField == "" {
		sortField = "createdAt"
	}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortField, Value: -1}}))
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, apierr.Storage(err)
	}
	return events, nil
}

// GetByID loads one event.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("event not found")
		}
		return nil, apierr.Storage(err)
	}
	return &e, nil
}

// Create inserts a new event with defaults applied.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Name = normalize.Name(e.Name)
	e.Description = sanitize.Text(e.Description)
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	if e.RequiredVolunteers == 0 {
		e.RequiredVolunteers = models.DefaultRequiredVolunteers
	}
	if e.AssignedVolunteers == nil {
		e.AssignedVolunteers = []primitive.ObjectID{}
	}

	if e.Name == "" {
		return models.Event{}, apierr.Validation("name is required")
	}
	if e.Date.IsZero() {
		return models.Event{}, apierr.Validation("date is required")
	}
	if e.Location == "" {
		return models.Event{}, apierr.Validation("location is required")
	}
	if !models.IsValidEventStatus(e.Status) {
		return models.Event{}, apierr.Validation(`status must be "upcoming", "ongoing", or "completed"`)
	}
	if e.RequiredVolunteers < 0 {
		return models.Event{}, apierr.Validation("requiredVolunteers must be >= 0")
	}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, apierr.Storage(err)
	}
	return e, nil
}

// Update holds the fields callers may change; nil pointers are left
// untouched. Status transitions are externally driven, so any valid
// status value is accepted regardless of the event date.
type Update struct {
	Name               *string
	Date               *time.Time
	Location           *string
	Description        *string
	RequiredVolunteers *int
	AssignedVolunteers *[]primitive.ObjectID
	Status             *string
}

// Apply merges the supplied fields into the event and returns the
// updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Event, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		if name == "" {
			return nil, apierr.Validation("name cannot be empty")
		}
		set["name"] = name
	}
	if upd.Date != nil {
		if upd.Date.IsZero() {
			return nil, apierr.Validation("date cannot be empty")
		}
		set["date"] = *upd.Date
	}
	if upd.Location != nil {
		if *upd.Location == "" {
			return nil, apierr.Validation("location cannot be empty")
		}
		set["location"] = *upd.Location
	}
	if upd.Description != nil {
		set["description"] = sanitize.Text(*upd.Description)
	}
	if upd.RequiredVolunteers != nil {
		if *upd.RequiredVolunteers < 0 {
			return nil, apierr.Validation("requiredVolunteers must be >= 0")
		}
		set["requiredVolunteers"] = *upd.RequiredVolunteers
	}
	if upd.AssignedVolunteers != nil {
		set["assignedVolunteers"] = *upd.AssignedVolunteers
	}
	if upd.Status != nil {
		if !models.IsValidEventStatus(*upd.Status) {
			return nil, apierr.Validation(`status must be "upcoming", "ongoing", or "completed"`)
		}
		set["status"] = *upd.Status
	}

	var e models.Event
	err := s.c.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("event not found")
		}
		return nil, apierr.Storage(err)
	}
	return &e, nil
}

// Delete removes an event. Tasks and attendance referencing it stay in
// place (orphan tolerant, no cascade).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apierr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apierr.NotFound("event not found")
	}
	return nil
}

// ExistingIDs reports which of the given ids have an event document.
func (s *Store) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	found := make(map[primitive.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, apierr.Storage(err)
		}
		found[row.ID] = true
	}
	if err := cur.Err(); err != nil {
		return nil, apierr.Storage(err)
	}
	return found, nil
}
