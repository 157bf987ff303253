// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work assigned to one volunteer for one event.
//
// EventID and VolunteerID are validated at creation time but there is
// no referential-integrity enforcement afterwards: deleting the event
// or the volunteer leaves the task in place with a dangling reference.
type Task struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID      primitive.ObjectID `bson:"eventId" json:"eventId"`
	VolunteerID  primitive.ObjectID `bson:"volunteerId" json:"volunteerId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Status       string             `bson:"status" json:"status"`     // pending | in-progress | completed
	Priority     string             `bson:"priority" json:"priority"` // low | medium | high
	DueDate      *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	AssignedDate time.Time          `bson:"assignedDate" json:"assignedDate"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidTaskStatus reports whether s is a recognized task status.
func IsValidTaskStatus(s string) bool {
	return s == TaskPending || s == TaskInProgress || s == TaskCompleted
}

// IsValidTaskPriority reports whether p is a recognized task priority.
func IsValidTaskPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
