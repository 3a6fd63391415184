package api

import (
	"context"
	"net/http"
)

// HealthStatus represents the API health status
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Health checks if the API is healthy
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.do(ctx, request{method: http.MethodGet, path: "/health", public: true}, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
