package client

import (
	"context"
	"net/http"
)

// Health is the service health report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the service and its database connection. A degraded
// service answers 503; that surfaces here as an APIError.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &out, false)
	return out, err
}
