// Package dashboard assembles the dashboard view: saved locations with
// their weather, plus device tiles.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/api"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/storage"
	"github.com/sguter90/homenet/pkg/weather"
)

// Backend is the subset of the API client used by the dashboard
type Backend interface {
	IsAuthenticated(ctx context.Context) bool
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetWeather(ctx context.Context, locationID models.ID) (*models.WeatherResponse, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
}

// Dashboard is the assembled view
type Dashboard struct {
	Locations []models.SavedLocation
	Devices   []models.Device
	// Failed counts locations whose weather could not be fetched,
	// including those shown with mock weather
	Failed int
	// Stale is set when locations or devices came from the local cache
	Stale bool
}

// Builder builds dashboards
type Builder struct {
	backend      Backend
	local        *storage.Local
	mockFallback bool
}

// Option configures a Builder
type Option func(*Builder)

// WithMockFallback substitutes generated weather for failed fetches
// instead of dropping the location
func WithMockFallback(enabled bool) Option {
	return func(b *Builder) {
		b.mockFallback = enabled
	}
}

// NewBuilder creates a dashboard builder
func NewBuilder(backend Backend, local *storage.Local, opts ...Option) *Builder {
	b := &Builder{backend: backend, local: local}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build lists locations, fetches their weather concurrently and loads
// devices. Read failures never fail the build: a location whose weather
// cannot be fetched is dropped, and list failures fall back to the cache.
// When not authenticated the dashboard is empty.
func (b *Builder) Build(ctx context.Context) (Dashboard, error) {
	empty := Dashboard{Locations: []models.SavedLocation{}, Devices: []models.Device{}}
	if !b.backend.IsAuthenticated(ctx) {
		return empty, nil
	}

	dash := empty

	locations, err := b.backend.ListLocations(ctx)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return empty, nil
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return empty, ctxErr
		}
		log.Warn().Err(err).Msg("Failed to list locations, using cached dashboard")
		cached, cacheErr := b.local.Locations(ctx)
		if cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("Failed to read cached locations")
		}
		dash.Locations = cached
		dash.Stale = true
	default:
		dash.Locations, dash.Failed = b.fetchWeather(ctx, locations)
		if err := b.local.SetLocations(ctx, dash.Locations); err != nil {
			log.Warn().Err(err).Msg("Failed to cache locations")
		}
	}

	devices, err := b.backend.ListDevices(ctx)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return empty, nil
	case err != nil:
		log.Warn().Err(err).Msg("Failed to list devices, using cache")
		cached, cacheErr := b.local.Devices(ctx)
		if cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("Failed to read cached devices")
		}
		dash.Devices = cached
		dash.Stale = true
	default:
		dash.Devices = devices
		if err := b.local.SetDevices(ctx, devices); err != nil {
			log.Warn().Err(err).Msg("Failed to cache devices")
		}
	}

	return dash, nil
}

// fetchWeather runs one request per location. Results keep the order of
// locations; failures are dropped unless mock fallback is enabled.
func (b *Builder) fetchWeather(ctx context.Context, locations []models.Location) ([]models.SavedLocation, int) {
	results := make([]*models.SavedLocation, len(locations))
	failures := make([]bool, len(locations))

	var wg sync.WaitGroup
	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc models.Location) {
			defer wg.Done()

			resp, err := b.backend.GetWeather(ctx, loc.ID)
			if err != nil {
				log.Warn().Err(err).Str("location_id", loc.ID.String()).Str("location", loc.Name).Msg("Failed to fetch weather")
				failures[i] = true
				if b.mockFallback {
					saved := weather.MockSavedLocation(loc.ID, loc.City())
					saved.AddedAt = loc.CreatedAt
					results[i] = &saved
				}
				return
			}

			current, hourly, daily := weather.FromResponse(*resp)
			results[i] = &models.SavedLocation{
				ID:      loc.ID,
				City:    loc.City(),
				Weather: current,
				Hourly:  hourly,
				Daily:   daily,
				AddedAt: loc.CreatedAt,
			}
		}(i, loc)
	}
	wg.Wait()

	saved := make([]models.SavedLocation, 0, len(locations))
	failed := 0
	for i, r := range results {
		if failures[i] {
			failed++
		}
		if r != nil {
			saved = append(saved, *r)
		}
	}
	return saved, failed
}
