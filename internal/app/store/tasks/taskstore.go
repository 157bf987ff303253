// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/sanitize"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the tasks collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// List returns all tasks sorted by sortField descending; empty means
// newest-created first.
func (s *Store) List(ctx context.Context, sortField string) ([]models.Task, error) {
	if sortField == "" {
		sortField = "createdAt"
	}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortField, Value: -1}}))
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, apierr.Storage(err)
	}
	return tasks, nil
}

// GetByID loads one task.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("task not found")
		}
		return nil, apierr.Storage(err)
	}
	return &t, nil
}

// Create inserts a new task with defaults applied. Reference validity
// (eventId, volunteerId) is checked by the handler before this call;
// once created, references are not re-verified.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Description = sanitize.Text(t.Description)
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if t.EventID.IsZero() {
		return models.Task{}, apierr.Validation("eventId is required")
	}
	if t.VolunteerID.IsZero() {
		return models.Task{}, apierr.Validation("volunteerId is required")
	}
	if t.Title == "" {
		return models.Task{}, apierr.Validation("title is required")
	}
	if !models.IsValidTaskStatus(t.Status) {
		return models.Task{}, apierr.Validation(`status must be "pending", "in-progress", or "completed"`)
	}
	if !models.IsValidTaskPriority(t.Priority) {
		return models.Task{}, apierr.Validation(`priority must be "low", "medium", or "high"`)
	}

	now := time.Now().UTC()
	if t.AssignedDate.IsZero() {
		t.AssignedDate = now
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, apierr.Storage(err)
	}
	return t, nil
}

// Update holds the fields callers may change; nil pointers are left
// untouched.
type Update struct {
	EventID     *primitive.ObjectID
	VolunteerID *primitive.ObjectID
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// Apply merges the supplied fields into the task and returns the
// updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.EventID != nil {
		if upd.EventID.IsZero() {
			return nil, apierr.Validation("eventId cannot be empty")
		}
		set["eventId"] = *upd.EventID
	}
	if upd.VolunteerID != nil {
		if upd.VolunteerID.IsZero() {
			return nil, apierr.Validation("volunteerId cannot be empty")
		}
		set["volunteerId"] = *upd.VolunteerID
	}
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = sanitize.Text(*upd.Description)
	}
	if upd.Status != nil {
		if !models.IsValidTaskStatus(*upd.Status) {
			return nil, apierr.Validation(`status must be "pending", "in-progress", or "completed"`)
		}
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		if !models.IsValidTaskPriority(*upd.Priority) {
			return nil, apierr.Validation(`priority must be "low", "medium", or "high"`)
		}
		set["priority"] = *upd.Priority
	}
	if upd.DueDate != nil {
		set["dueDate"] = *upd.DueDate
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("task not found")
		}
		return nil, apierr.Storage(err)
	}
	return &t, nil
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apierr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apierr.NotFound("task not found")
	}
	return nil
}

// CountByEvent returns how many tasks reference the given event. Used
// by tests to document orphan tolerance on event delete.
func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return n, nil
}
