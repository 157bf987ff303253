package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AuditEvent is one entry of the admin audit trail.
type AuditEvent struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	Actor         string            `json:"actor,omitempty"`
	TargetID      string            `json:"targetId,omitempty"`
	IP            string            `json:"ip,omitempty"`
	UserAgent     string            `json:"userAgent,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// AuditQuery filters an audit listing. Zero values mean "no filter";
// Limit 0 uses the server default.
type AuditQuery struct {
	Actor     string
	Category  string
	EventType string
	StartDate time.Time
	EndDate   time.Time
	Limit     int64
	Offset    int64
}

// AuditPage is one page of audit events. Total counts all matches, not
// just the page.
type AuditPage struct {
	Events []AuditEvent `json:"events"`
	Total  int64        `json:"total"`
	Limit  int64        `json:"limit"`
	Offset int64        `json:"offset"`
}

// AuditEvents lists audit trail entries, newest first. Requires an
// admin session.
func (c *Client) AuditEvents(ctx context.Context, q AuditQuery) (AuditPage, error) {
	params := url.Values{}
	if q.Actor != "" {
		params.Set("actor", q.Actor)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.EventType != "" {
		params.Set("type", q.EventType)
	}
	if !q.StartDate.IsZero() {
		params.Set("start_date", q.StartDate.Format("2006-01-02"))
	}
	if !q.EndDate.IsZero() {
		params.Set("end_date", q.EndDate.Format("2006-01-02"))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.FormatInt(q.Limit, 10))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.FormatInt(q.Offset, 10))
	}

	path := "/api/audit"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var out AuditPage
	err := c.do(ctx, http.MethodGet, path, nil, &out, true)
	return out, err
}

// FailedLogins lists failed login attempts within the lookback window
// (server default 24h). Requires an admin session.
func (c *Client) FailedLogins(ctx context.Context, sinceHours int) ([]AuditEvent, error) {
	path := "/api/audit/failed-logins"
	if sinceHours > 0 {
		path += "?since_hours=" + strconv.Itoa(sinceHours)
	}
	var out struct {
		Events []AuditEvent `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Events, nil
}
