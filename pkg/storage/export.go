package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

// ErrInvalidFormat is returned by Import when the document is not a JSON object
var ErrInvalidFormat = errors.New("invalid data format")

// Snapshot is the export document combining all cached entities
type Snapshot struct {
	User            *models.User            `json:"user,omitempty"`
	Locations       []models.SavedLocation  `json:"locations"`
	Devices         []models.Device         `json:"devices"`
	Rules           []models.AutomationRule `json:"rules"`
	DarkMode        bool                    `json:"darkMode"`
	TemperatureUnit weather.TemperatureUnit `json:"temperatureUnit"`
	WindSpeedUnit   weather.WindSpeedUnit   `json:"windSpeedUnit"`
	ExportDate      time.Time               `json:"exportDate"`
}

// Snapshot collects the current state. The auth token is never included.
func (l *Local) Snapshot(ctx context.Context) (*Snapshot, error) {
	user, err := l.User(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := l.Locations(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := l.Devices(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := l.Rules(ctx)
	if err != nil {
		return nil, err
	}
	darkMode, err := l.DarkMode(ctx)
	if err != nil {
		return nil, err
	}
	tempUnit, err := l.TemperatureUnit(ctx)
	if err != nil {
		return nil, err
	}
	windUnit, err := l.WindSpeedUnit(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		User:            user,
		Locations:       locations,
		Devices:         devices,
		Rules:           rules,
		DarkMode:        darkMode,
		TemperatureUnit: tempUnit,
		WindSpeedUnit:   windUnit,
		ExportDate:      l.now().UTC(),
	}, nil
}

// Export renders the current state as one JSON document
func (l *Local) Export(ctx context.Context) ([]byte, error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// Import writes back every recognized top-level key of an export document.
// Unknown, absent, malformed or unrecognized values are skipped. It returns the keys written.
func (l *Local) Import(ctx context.Context, data []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return nil, ErrInvalidFormat
	}

	var written []string
	apply := func(field string, fn func(raw json.RawMessage) error) error {
		raw, ok := doc[field]
		if !ok || string(raw) == "null" {
			return nil
		}
		if err := fn(raw); err != nil {
			var bad *malformedError
			if errors.As(err, &bad) {
				log.Warn().Str("field", field).Err(err).Msg("Skipping malformed import field")
				return nil
			}
			return err
		}
		written = append(written, field)
		return nil
	}

	steps := []struct {
		field string
		fn    func(raw json.RawMessage) error
	}{
		{"user", func(raw json.RawMessage) error {
			var u models.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return malformed(err)
			}
			return l.SetUser(ctx, u)
		}},
		{"locations", func(raw json.RawMessage) error {
			var v []models.SavedLocation
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			return l.SetLocations(ctx, v)
		}},
		{"devices", func(raw json.RawMessage) error {
			var v []models.Device
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			return l.SetDevices(ctx, v)
		}},
		{"rules", func(raw json.RawMessage) error {
			var v []models.AutomationRule
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			return l.SetRules(ctx, v)
		}},
		{"darkMode", func(raw json.RawMessage) error {
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			return l.SetDarkMode(ctx, v)
		}},
		{"temperatureUnit", func(raw json.RawMessage) error {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			unit, err := weather.ParseTemperatureUnit(v)
			if err != nil {
				return malformed(err)
			}
			return l.SetTemperatureUnit(ctx, unit)
		}},
		{"windSpeedUnit", func(raw json.RawMessage) error {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return malformed(err)
			}
			unit, err := weather.ParseWindSpeedUnit(v)
			if err != nil {
				return malformed(err)
			}
			return l.SetWindSpeedUnit(ctx, unit)
		}},
	}

	for _, step := range steps {
		if err := apply(step.field, step.fn); err != nil {
			return written, fmt.Errorf("failed to import %s: %w", step.field, err)
		}
	}

	return written, nil
}

// malformedError marks an import field whose value could not be decoded
type malformedError struct {
	err error
}

func (e *malformedError) Error() string { return e.err.Error() }
func (e *malformedError) Unwrap() error { return e.err }

func malformed(err error) error {
	return &malformedError{err: err}
}
