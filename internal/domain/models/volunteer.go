// internal/domain/models/volunteer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Volunteer statuses.
const (
	VolunteerActive   = "active"
	VolunteerInactive = "inactive"
)

// Volunteer is a registered volunteer.
//
// Hours is the cumulative total of hours across this volunteer's
// "present" attendance records. It is only ever changed by the accrual
// service (atomic $inc), never written directly by handlers.
type Volunteer struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"` // unique, normalized lowercase
	Phone    string             `bson:"phone" json:"phone"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	Skills   string             `bson:"skills,omitempty" json:"skills,omitempty"`
	Hours    float64            `bson:"hours" json:"hours"`
	Status   string             `bson:"status" json:"status"` // active | inactive
	JoinDate time.Time          `bson:"joinDate" json:"joinDate"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidVolunteerStatus reports whether s is a recognized volunteer status.
func IsValidVolunteerStatus(s string) bool {
	return s == VolunteerActive || s == VolunteerInactive
}
