package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateEventParams are the fields accepted when creating an event.
type CreateEventParams struct {
	Name               string    `json:"name"`
	Date               time.Time `json:"date"`
	Location           string    `json:"location"`
	Description        string    `json:"description,omitempty"`
	RequiredVolunteers int       `json:"requiredVolunteers,omitempty"`
	AssignedVolunteers []string  `json:"assignedVolunteers,omitempty"`
	Status             string    `json:"status,omitempty"`
}

// UpdateEventParams are the fields accepted on update; nil fields are
// left unchanged.
type UpdateEventParams struct {
	Name               *string    `json:"name,omitempty"`
	Date               *time.Time `json:"date,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Description        *string    `json:"description,omitempty"`
	RequiredVolunteers *int       `json:"requiredVolunteers,omitempty"`
	AssignedVolunteers *[]string  `json:"assignedVolunteers,omitempty"`
	Status             *string    `json:"status,omitempty"`
}

// Events lists all events. sort selects the descending sort field
// ("date", ...); empty means newest-created first.
func (c *Client) Events(ctx context.Context, sort string) ([]Event, error) {
	path := "/api/events"
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}
	var out []Event
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Event fetches one event by id.
func (c *Client) Event(ctx context.Context, id string) (Event, error) {
	var out Event
	err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

// CreateEvent creates an event. Requires an admin session.
func (c *Client) CreateEvent(ctx context.Context, p CreateEventParams) (Event, error) {
	var out Event
	err := c.do(ctx, http.MethodPost, "/api/events", p, &out, true)
	return out, err
}

// UpdateEvent applies a partial update. Requires an admin session.
func (c *Client) UpdateEvent(ctx context.Context, id string, p UpdateEventParams) (Event, error) {
	var out Event
	err := c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), p, &out, true)
	return out, err
}

// DeleteEvent removes an event. Tasks and attendance that reference it
// are left in place. Requires an admin session.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, nil, true)
}
