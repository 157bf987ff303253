package client

import "time"

// Wire types for the API. IDs are Mongo ObjectID hex strings. These
// mirror the server's JSON shapes without dragging the server's BSON
// types into consumer code.

// Volunteer is a registered volunteer. Hours is the accrued total
// across "present" attendance records.
type Volunteer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Skills    string    `json:"skills,omitempty"`
	Hours     float64   `json:"hours"`
	Status    string    `json:"status"` // active | inactive
	JoinDate  time.Time `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is a volunteering event.
type Event struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Date               time.Time `json:"date"`
	Location           string    `json:"location"`
	Description        string    `json:"description,omitempty"`
	RequiredVolunteers int       `json:"requiredVolunteers"`
	AssignedVolunteers []string  `json:"assignedVolunteers"`
	Status             string    `json:"status"` // upcoming | ongoing | completed
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Task is a unit of work assigned to one volunteer for one event.
type Task struct {
	ID           string     `json:"id"`
	EventID      string     `json:"eventId"`
	VolunteerID  string     `json:"volunteerId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`   // pending | in-progress | completed
	Priority     string     `json:"priority"` // low | medium | high
	DueDate      *time.Time `json:"dueDate,omitempty"`
	AssignedDate time.Time  `json:"assignedDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AttendanceRecord is one attendance marking. The volunteer and event
// references arrive either as bare hex ids or expanded documents
// depending on the endpoint; both land in an EntityRef.
type AttendanceRecord struct {
	ID          string               `json:"id"`
	VolunteerID EntityRef[Volunteer] `json:"volunteerId"`
	EventID     EntityRef[Event]     `json:"eventId"`
	Date        time.Time            `json:"date"`
	Status      string               `json:"status"` // present | absent
	Hours       float64              `json:"hours"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`

	// Sibling expansions from the list endpoint; folded into the refs
	// by resolve() so callers only ever look at VolunteerID/EventID.
	Volunteer *Volunteer `json:"volunteer,omitempty"`
	Event     *Event     `json:"event,omitempty"`
}

// resolve folds sibling volunteer/event documents into the refs. Runs
// once on receipt; afterwards the record is shape-independent.
func (r *AttendanceRecord) resolve() {
	if r.Volunteer != nil && r.VolunteerID.Expanded == nil {
		r.VolunteerID.Expanded = r.Volunteer
		if r.VolunteerID.ID == "" {
			r.VolunteerID.ID = r.Volunteer.ID
		}
	}
	if r.Event != nil && r.EventID.Expanded == nil {
		r.EventID.Expanded = r.Event
		if r.EventID.ID == "" {
			r.EventID.ID = r.Event.ID
		}
	}
	r.Volunteer = nil
	r.Event = nil
}
