// internal/app/store/volunteers/volunteerstore.go
package volunteerstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/normalize"
	"github.com/dalemusser/volunteerhub/internal/app/system/sanitize"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the volunteers collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteers")}
}

// List returns all volunteers sorted by sortField descending.
// An empty sortField sorts newest-created first.
func (s *Store) List(ctx context.Context, sortField string) ([]models.Volunteer, error) {
	if sortField == "" {
		sortField = "createdAt"
	}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortField, Value: -1}}))
	if err != nil {
		return nil, apierr.Storage(err)
	}
	defer cur.Close(ctx)

	volunteers := []models.Volunteer{}
	if err := cur.All(ctx, &volunteers); err != nil {
		return nil, apierr.Storage(err)
	}
	return volunteers, nil
}

// GetByID loads one volunteer.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("volunteer not found")
		}
		return nil, apierr.Storage(err)
	}
	return &v, nil
}

// Create inserts a new volunteer after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, v models.Volunteer) (models.Volunteer, error) {
	v.ID = primitive.NewObjectID()
	v.Name = normalize.Name(v.Name)
	v.Email = normalize.Email(v.Email)
	v.Address = sanitize.Text(v.Address)
	v.Skills = sanitize.Text(v.Skills)
	if v.Status == "" {
		v.Status = models.VolunteerActive
	}

	if v.Name == "" {
		return models.Volunteer{}, apierr.Validation("name is required")
	}
	if v.Email == "" || !strings.Contains(v.Email, "@") {
		return models.Volunteer{}, apierr.Validation("a valid email is required")
	}
	if v.Phone == "" {
		return models.Volunteer{}, apierr.Validation("phone is required")
	}
	if !models.IsValidVolunteerStatus(v.Status) {
		return models.Volunteer{}, apierr.Validation(`status must be "active" or "inactive"`)
	}
	if v.Hours < 0 {
		return models.Volunteer{}, apierr.Validation("hours must be >= 0")
	}

	now := time.Now().UTC()
	if v.JoinDate.IsZero() {
		v.JoinDate = now
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Volunteer{}, apierr.Validation("a volunteer with this email already exists")
		}
		return models.Volunteer{}, apierr.Storage(err)
	}
	return v, nil
}

// Update holds the fields callers may change. Nil pointers leave the
// stored value untouched. Hours is deliberately absent: the cumulative
// total is only ever moved by the accrual service.
type Update struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	Skills   *string
	Status   *string
	JoinDate *time.Time
}

// Apply merges the supplied fields into the volunteer and returns the
// updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Volunteer, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		if name == "" {
			return nil, apierr.Validation("name cannot be empty")
		}
		set["name"] = name
	}
	if upd.Email != nil {
		email := normalize.Email(*upd.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, apierr.Validation("a valid email is required")
		}
		set["email"] = email
	}
	if upd.Phone != nil {
		if *upd.Phone == "" {
			return nil, apierr.Validation("phone cannot be empty")
		}
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = sanitize.Text(*upd.Address)
	}
	if upd.Skills != nil {
		set["skills"] = sanitize.Text(*upd.Skills)
	}
	if upd.Status != nil {
		if !models.IsValidVolunteerStatus(*upd.Status) {
			return nil, apierr.Validation(`status must be "active" or "inactive"`)
		}
		set["status"] = *upd.Status
	}
	if upd.JoinDate != nil {
		set["joinDate"] = *upd.JoinDate
	}

	var v models.Volunteer
	err := s.c.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.NotFound("volunteer not found")
		}
		if wafflemongo.IsDup(err) {
			return nil, apierr.Validation("a volunteer with this email already exists")
		}
		return nil, apierr.Storage(err)
	}
	return &v, nil
}

// Delete removes a volunteer. Tasks and attendance referencing it are
// left in place; orphan tolerance is the documented policy.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apierr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apierr.NotFound("volunteer not found")
	}
	return nil
}

// ExistingIDs reports which of the given ids have a volunteer document.
// Used by the accrual service to validate batch references up front.
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

// IncrementHours atomically adds delta to a volunteer's cumulative
// hours. A $inc keeps concurrent batches from losing updates; callers
// never read-modify-write the total.
func (s *Store) IncrementHours(ctx context.Context, id primitive.ObjectID, delta float64) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"hours": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return apierr.Storage(err)
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("volunteer not found")
	}
	return nil
}
