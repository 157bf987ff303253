// internal/domain/models/authsession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles issued by the auth layer.
const (
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
)

// AuthSession tracks one issued refresh token. Refresh rotates the
// session: the old record is revoked and a new one is inserted, so a
// stolen (already-used) refresh token cannot mint further access tokens.
type AuthSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	JTI       string             `bson:"jti"` // uuid carried in the refresh token
	Role      string             `bson:"role"`
	Subject   string             `bson:"subject"` // login email
	CreatedAt time.Time          `bson:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	RevokedAt *time.Time         `bson:"revokedAt,omitempty"`
}

// Live reports whether the session can still be used to refresh at time now.
func (s AuthSession) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
