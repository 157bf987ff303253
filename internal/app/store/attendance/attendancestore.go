// internal/app/store/attendance/attendancestore.go
package attendancestore

import (
	"context"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the attendance collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance")}
}

// List returns all attendance records, most recent session date first.
func (s *Store) List(ctx context.Context) ([]models.Attendance, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	records := []models.Attendance{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, apierr.Storage(err)
	}
	return records, nil
}

// ListExpanded returns all attendance records with the referenced
// volunteer and event documents joined in, most recent session date
// first. Records whose volunteer or event has since been deleted are
// still returned; the missing side is nil.
func (s *Store) ListExpanded(ctx context.Context) ([]models.ExpandedAttendance, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "volunteers",
			"localField":   "volunteerId",
			"foreignField": "_id",
			"as":           "volunteer",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$volunteer",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "events",
			"localField":   "eventId",
			"foreignField": "_id",
			"as":           "event",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$event",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	records := []models.ExpandedAttendance{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, apierr.Storage(err)
	}
	return records, nil
}

// InsertBatch appends a batch of attendance records. Every call inserts
// new rows; marking the same volunteer and event twice produces two
// records, both counted toward the cumulative total. Callers validate
// the batch and wrap the call in a transaction alongside the hour
// increments.
func (s *Store) InsertBatch(ctx context.Context, records []models.Attendance) ([]models.Attendance, error) {
	if len(records) == 0 {
		return nil, apierr.Validation("attendance batch is empty")
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(records))
	for i := range records {
		records[i].ID = primitive.NewObjectID()
		if records[i].Date.IsZero() {
			records[i].Date = now
		}
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
		docs[i] = records[i]
	}

	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return nil, apierr.Storage(err)
	}
	return records, nil
}

// CountByVolunteer returns how many attendance records reference the
// given volunteer.
func (s *Store) CountByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"volunteerId": volunteerID})
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return n, nil
}
