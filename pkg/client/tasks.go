package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateTaskParams are the fields accepted when creating a task. Both
// references must name existing documents.
type CreateTaskParams struct {
	EventID     string     `json:"eventId"`
	VolunteerID string     `json:"volunteerId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskParams are the fields accepted on update; nil fields are
// left unchanged.
type UpdateTaskParams struct {
	EventID     *string    `json:"eventId,omitempty"`
	VolunteerID *string    `json:"volunteerId,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Tasks lists all tasks. sort selects the descending sort field
// ("dueDate", ...); empty means newest-created first.
func (c *Client) Tasks(ctx context.Context, sort string) ([]Task, error) {
	path := "/api/tasks"
	if sort != "" {
		path += "?sort=" + url.QueryEscape(sort)
	}
	var out []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Task fetches one task by id.
func (c *Client) Task(ctx context.Context, id string) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

// CreateTask creates a task. Requires an admin session.
func (c *Client) CreateTask(ctx context.Context, p CreateTaskParams) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", p, &out, true)
	return out, err
}

// UpdateTask applies a partial update. Requires an admin session.
func (c *Client) UpdateTask(ctx context.Context, id string, p UpdateTaskParams) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), p, &out, true)
	return out, err
}

// DeleteTask removes a task. Requires an admin session.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, true)
}
