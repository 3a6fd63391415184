package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sguter90/homenet/pkg/models"
)

// ListDevices returns the user's devices
func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	devices := []models.Device{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/devices"}, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// CreateDevice registers a new device
func (c *Client) CreateDevice(ctx context.Context, device models.DeviceCreate) (*models.Device, error) {
	var created models.Device
	if err := c.do(ctx, request{method: http.MethodPost, path: "/devices", body: device}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDevice sends a partial update; only the fields present in patch
// are changed by the backend.
func (c *Client) UpdateDevice(ctx context.Context, id models.ID, patch map[string]interface{}) (*models.Device, error) {
	var updated models.Device
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/devices/" + url.PathEscape(id.String()),
		route:  "/devices/{id}",
		body:   patch,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDevice removes a device
func (c *Client) DeleteDevice(ctx context.Context, id models.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/devices/" + url.PathEscape(id.String()),
		route:  "/devices/{id}",
	}, nil)
}
