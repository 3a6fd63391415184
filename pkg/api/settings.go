package api

import (
	"context"
	"net/http"

	"github.com/sguter90/homenet/pkg/models"
)

// GetSettings returns the user's preference record
func (c *Client) GetSettings(ctx context.Context) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.do(ctx, request{method: http.MethodGet, path: "/settings"}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings replaces the user's preference record
func (c *Client) UpdateSettings(ctx context.Context, settings models.UserSettings) (*models.UserSettings, error) {
	var updated models.UserSettings
	if err := c.do(ctx, request{method: http.MethodPut, path: "/settings", body: settings}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUserData wipes every record the backend holds for the user
func (c *Client) DeleteUserData(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/user/data"}, nil)
}
