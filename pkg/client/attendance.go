package client

import (
	"context"
	"net/http"
	"time"
)

// AttendanceParams is one row of a bulk attendance submission.
type AttendanceParams struct {
	VolunteerID string     `json:"volunteerId"`
	EventID     string     `json:"eventId"`
	Date        *time.Time `json:"date,omitempty"`
	Status      string     `json:"status"` // present | absent
	Hours       float64    `json:"hours"`
}

type bulkAttendanceRequest struct {
	Records []AttendanceParams `json:"records"`
}

// Attendance lists all attendance records with their volunteer and
// event documents expanded, most recent session first. Records whose
// references have since been deleted still come back; the missing side
// of the ref stays unexpanded.
func (c *Client) Attendance(ctx context.Context) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	if err := c.do(ctx, http.MethodGet, "/api/attendance", nil, &out, true); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].resolve()
	}
	return out, nil
}

// MarkAttendance submits a bulk batch. The whole batch is validated
// first; any bad row rejects it all. Present rows accrue their hours to
// the volunteer's total; resubmitting a batch accrues again. Requires
// an admin session.
func (c *Client) MarkAttendance(ctx context.Context, records []AttendanceParams) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	err := c.do(ctx, http.MethodPost, "/api/attendance/bulk", bulkAttendanceRequest{Records: records}, &out, true)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].resolve()
	}
	return out, nil
}
