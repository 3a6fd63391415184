package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sguter90/homenet/pkg/models"
)

// SearchLocations looks up cities by name
func (c *Client) SearchLocations(ctx context.Context, query string) ([]models.City, error) {
	params := url.Values{}
	params.Set("query", query)

	cities := []models.City{}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/locations/search?" + params.Encode(),
		route:  "/locations/search",
	}, &cities)
	if err != nil {
		return nil, err
	}
	return cities, nil
}

// ListLocations returns the user's saved locations
func (c *Client) ListLocations(ctx context.Context) ([]models.Location, error) {
	locations := []models.Location{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/locations"}, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// AddLocation saves a location for the user
func (c *Client) AddLocation(ctx context.Context, loc models.LocationCreate) (*models.Location, error) {
	var created models.Location
	if err := c.do(ctx, request{method: http.MethodPost, path: "/locations", body: loc}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteLocation removes a saved location
func (c *Client) DeleteLocation(ctx context.Context, id models.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/locations/" + url.PathEscape(id.String()),
		route:  "/locations/{id}",
	}, nil)
}

// GetWeather returns current, hourly and daily weather for a location
func (c *Client) GetWeather(ctx context.Context, locationID models.ID) (*models.WeatherResponse, error) {
	var resp models.WeatherResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/weather/" + url.PathEscape(locationID.String()),
		route:  "/weather/{locationId}",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
