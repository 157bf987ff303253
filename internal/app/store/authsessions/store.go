// internal/app/store/authsessions/store.go
package authsessions

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store manages refresh-token sessions.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("auth_sessions")}
}

// Create records a newly issued refresh token.
func (s *Store) Create(ctx context.Context, role, subject, jti string, ttl time.Duration) (models.AuthSession, error) {
	now := time.Now().UTC()
	sess := models.AuthSession{
		ID:        primitive.NewObjectID(),
		JTI:       jti,
		Role:      role,
		Subject:   subject,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return models.AuthSession{}, apierr.Storage(err)
	}
	return sess, nil
}

// GetByJTI loads the session for a refresh token id. A missing record
// is an auth failure, not a 404: the token names a session that does
// not exist.
func (s *Store) GetByJTI(ctx context.Context, jti string) (*models.AuthSession, error) {
	var sess models.AuthSession
	if err := s.c.FindOne(ctx, bson.M{"jti": jti}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.Auth("unknown refresh token")
		}
		return nil, apierr.Storage(err)
	}
	return &sess, nil
}

// Revoke marks a session unusable. Revoking an already revoked or
// missing session is not an error.
func (s *Store) Revoke(ctx context.Context, jti string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"jti": jti, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": time.Now().UTC()}},
	)
	if err != nil {
		return apierr.Storage(err)
	}
	return nil
}

// RevokeAllForSubject revokes every live session for a login identity.
func (s *Store) RevokeAllForSubject(ctx context.Context, subject string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"subject": subject, "revokedAt": nil},
		bson.M{"$set": bson.M{"revokedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return res.ModifiedCount, nil
}

// PurgeExpired deletes sessions whose expiry has passed. Called from a
// background sweep; the expiresAt TTL index also reclaims them, this
// just keeps test deployments without TTL monitors tidy.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": time.Now().UTC()}})
	if err != nil {
		return 0, apierr.Storage(err)
	}
	return res.DeletedCount, nil
}
