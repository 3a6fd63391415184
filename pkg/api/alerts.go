package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sguter90/homenet/pkg/models"
)

// ListAlerts returns the alerts of a location
func (c *Client) ListAlerts(ctx context.Context, locationID models.ID) ([]models.Alert, error) {
	alerts := []models.Alert{}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/alerts/" + url.PathEscape(locationID.String()),
		route:  "/alerts/{locationId}",
	}, &alerts)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// GenerateAlerts asks the backend to evaluate the location's weather and
// returns the newly created alerts.
func (c *Client) GenerateAlerts(ctx context.Context, locationID models.ID) ([]models.Alert, error) {
	alerts := []models.Alert{}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/alerts/" + url.PathEscape(locationID.String()) + "/generate",
		route:  "/alerts/{locationId}/generate",
	}, &alerts)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkAlertRead flags an alert as read
func (c *Client) MarkAlertRead(ctx context.Context, alertID models.ID) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/alerts/" + url.PathEscape(alertID.String()) + "/read",
		route:  "/alerts/{id}/read",
	}, nil)
}
