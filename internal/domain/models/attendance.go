// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Attendance is one attendance marking for one volunteer at one event.
//
// Hours only accrues to the volunteer's cumulative total when Status is
// "present". An absent record may carry a nonzero Hours value but it is
// informational only and never accrued.
type Attendance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VolunteerID primitive.ObjectID `bson:"volunteerId" json:"volunteerId"`
	EventID     primitive.ObjectID `bson:"eventId" json:"eventId"`
	Date        time.Time          `bson:"date" json:"date"`
	Status      string             `bson:"status" json:"status"` // present | absent
	Hours       float64            `bson:"hours" json:"hours"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsValidAttendanceStatus reports whether s is a recognized attendance status.
func IsValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// ExpandedAttendance is an attendance row with its volunteer and event
// documents joined in ($lookup). Volunteer or Event is nil when the
// referenced document has been deleted (dangling references are allowed).
type ExpandedAttendance struct {
	Attendance `bson:",inline"`

	Volunteer *Volunteer `bson:"volunteer,omitempty" json:"volunteer,omitempty"`
	Event     *Event     `bson:"event,omitempty" json:"event,omitempty"`
}
