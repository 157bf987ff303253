package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateVolunteerParams are the fields accepted when registering a
// volunteer. Hours is absent on purpose: totals only move through
// attendance accrual.
type CreateVolunteerParams struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Address  string     `json:"address,omitempty"`
	Skills   string     `json:"skills,omitempty"`
	Status   string     `json:"status,omitempty"`
	JoinDate *time.Time `json:"joinDate,omitempty"`
}

// UpdateVolunteerParams are the fields accepted on update; nil fields
// are left unchanged.
type UpdateVolunteerParams struct {
	Name     *string    `json:"name,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Address  *string    `json:"address,omitempty"`
	Skills   *string    `json:"skills,omitempty"`
	Status   *string    `json:"status,omitempty"`
	JoinDate *time.Time `json:"joinDate,omitempty"`
}

// Volunteers lists all volunteers. sort selects the descending sort
// field ("hours", "joinDate", ...); empty means newest-created first.
func (c *Client) Volunteers(ctx context.Context, sort string) ([]Volunteer, error) {
	path := "/api/volunteers"
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}
	var out []Volunteer
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Volunteer fetches one volunteer by id.
func (c *Client) Volunteer(ctx context.Context, id string) (Volunteer, error) {
	var out Volunteer
	err := c.do(ctx, http.MethodGet, "/api/volunteers/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

// CreateVolunteer registers a volunteer. Requires an admin session.
func (c *Client) CreateVolunteer(ctx context.Context, p CreateVolunteerParams) (Volunteer, error) {
	var out Volunteer
	err := c.do(ctx, http.MethodPost, "/api/volunteers", p, &out, true)
	return out, err
}

// UpdateVolunteer applies a partial update. Requires an admin session.
func (c *Client) UpdateVolunteer(ctx context.Context, id string, p UpdateVolunteerParams) (Volunteer, error) {
	var out Volunteer
	err := c.do(ctx, http.MethodPut, "/api/volunteers/"+url.PathEscape(id), p, &out, true)
	return out, err
}

// DeleteVolunteer removes a volunteer. Requires an admin session.
func (c *Client) DeleteVolunteer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/volunteers/"+url.PathEscape(id), nil, nil, true)
}
