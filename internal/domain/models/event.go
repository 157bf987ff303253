// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. Transitions are externally driven: the API never
// derives status from the event date.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
)

// DefaultRequiredVolunteers is used when a new event does not specify
// how many volunteers it needs.
const DefaultRequiredVolunteers = 10

// Event is a volunteering event.
type Event struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	Date               time.Time            `bson:"date" json:"date"`
	Location           string               `bson:"location" json:"location"`
	Description        string               `bson:"description,omitempty" json:"description,omitempty"`
	RequiredVolunteers int                  `bson:"requiredVolunteers" json:"requiredVolunteers"`
	AssignedVolunteers []primitive.ObjectID `bson:"assignedVolunteers" json:"assignedVolunteers"`
	Status             string               `bson:"status" json:"status"` // upcoming | ongoing | completed

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidEventStatus reports whether s is a recognized event status.
func IsValidEventStatus(s string) bool {
	return s == EventUpcoming || s == EventOngoing || s == EventCompleted
}
