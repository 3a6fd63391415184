package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

// Persisted key names
const (
	KeyToken           = "homenet_jwt_token"
	KeyUser            = "homenet_user"
	KeyLocations       = "homenet_locations"
	KeyDevices         = "homenet_devices"
	KeyRules           = "homenet_rules"
	KeyDarkMode        = "homenet_darkmode"
	KeyTemperatureUnit = "temperatureUnit"
	KeyWindSpeedUnit   = "windSpeedUnit"
)

// AllKeys lists every key owned by the client
var AllKeys = []string{
	KeyToken,
	KeyUser,
	KeyLocations,
	KeyDevices,
	KeyRules,
	KeyDarkMode,
	KeyTemperatureUnit,
	KeyWindSpeedUnit,
}

const (
	darkModeDark  = "dark"
	darkModeLight = "light"
)

// Local provides typed access to the client's persisted state. Getters
// return empty values when a key is absent; setters overwrite the full value.
type Local struct {
	store Store
	now   func() time.Time
}

// NewLocal wraps a Store with typed helpers
func NewLocal(store Store) *Local {
	return &Local{store: store, now: time.Now}
}

// Store returns the underlying key-value store
func (l *Local) Store() Store {
	return l.store
}

// Token returns the stored bearer token, or "" when logged out
func (l *Local) Token(ctx context.Context) (string, error) {
	v, _, err := l.store.Get(ctx, KeyToken)
	return v, err
}

// SetToken stores the bearer token as raw text
func (l *Local) SetToken(ctx context.Context, token string) error {
	return l.store.Set(ctx, KeyToken, token)
}

// ClearToken removes the bearer token
func (l *Local) ClearToken(ctx context.Context) error {
	return l.store.Delete(ctx, KeyToken)
}

// User returns the cached user profile or nil
func (l *Local) User(ctx context.Context) (*models.User, error) {
	var user models.User
	ok, err := l.getJSON(ctx, KeyUser, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// SetUser caches the user profile
func (l *Local) SetUser(ctx context.Context, user models.User) error {
	return l.setJSON(ctx, KeyUser, user)
}

// ClearSession removes the token and cached user
func (l *Local) ClearSession(ctx context.Context) error {
	if err := l.store.Delete(ctx, KeyToken); err != nil {
		return err
	}
	return l.store.Delete(ctx, KeyUser)
}

// Locations returns the cached dashboard locations
func (l *Local) Locations(ctx context.Context) ([]models.SavedLocation, error) {
	locations := []models.SavedLocation{}
	if _, err := l.getJSON(ctx, KeyLocations, &locations); err != nil {
		return []models.SavedLocation{}, err
	}
	if locations == nil {
		locations = []models.SavedLocation{}
	}
	return locations, nil
}

// SetLocations overwrites the cached dashboard locations
func (l *Local) SetLocations(ctx context.Context, locations []models.SavedLocation) error {
	if locations == nil {
		locations = []models.SavedLocation{}
	}
	return l.setJSON(ctx, KeyLocations, locations)
}

// Devices returns the cached devices
func (l *Local) Devices(ctx context.Context) ([]models.Device, error) {
	devices := []models.Device{}
	if _, err := l.getJSON(ctx, KeyDevices, &devices); err != nil {
		return []models.Device{}, err
	}
	if devices == nil {
		devices = []models.Device{}
	}
	return devices, nil
}

// SetDevices overwrites the cached devices
func (l *Local) SetDevices(ctx context.Context, devices []models.Device) error {
	if devices == nil {
		devices = []models.Device{}
	}
	return l.setJSON(ctx, KeyDevices, devices)
}

// Rules returns the stored automation rules
func (l *Local) Rules(ctx context.Context) ([]models.AutomationRule, error) {
	rules := []models.AutomationRule{}
	if _, err := l.getJSON(ctx, KeyRules, &rules); err != nil {
		return []models.AutomationRule{}, err
	}
	if rules == nil {
		rules = []models.AutomationRule{}
	}
	return rules, nil
}

// SetRules overwrites the stored automation rules
func (l *Local) SetRules(ctx context.Context, rules []models.AutomationRule) error {
	if rules == nil {
		rules = []models.AutomationRule{}
	}
	return l.setJSON(ctx, KeyRules, rules)
}

// DarkMode reports whether dark mode is enabled
func (l *Local) DarkMode(ctx context.Context) (bool, error) {
	v, _, err := l.store.Get(ctx, KeyDarkMode)
	if err != nil {
		return false, err
	}
	return v == darkModeDark, nil
}

// SetDarkMode stores the dark-mode flag as "dark" or "light"
func (l *Local) SetDarkMode(ctx context.Context, enabled bool) error {
	v := darkModeLight
	if enabled {
		v = darkModeDark
	}
	return l.store.Set(ctx, KeyDarkMode, v)
}

// TemperatureUnit returns the display temperature unit, fahrenheit by default
func (l *Local) TemperatureUnit(ctx context.Context) (weather.TemperatureUnit, error) {
	v, ok, err := l.store.Get(ctx, KeyTemperatureUnit)
	if err != nil {
		return weather.Fahrenheit, err
	}
	if !ok {
		return weather.Fahrenheit, nil
	}
	unit, err := weather.ParseTemperatureUnit(v)
	if err != nil {
		return weather.Fahrenheit, nil
	}
	return unit, nil
}

// SetTemperatureUnit stores the display temperature unit
func (l *Local) SetTemperatureUnit(ctx context.Context, unit weather.TemperatureUnit) error {
	if _, err := weather.ParseTemperatureUnit(string(unit)); err != nil {
		return err
	}
	return l.store.Set(ctx, KeyTemperatureUnit, string(unit))
}

// WindSpeedUnit returns the display wind speed unit, mph by default
func (l *Local) WindSpeedUnit(ctx context.Context) (weather.WindSpeedUnit, error) {
	v, ok, err := l.store.Get(ctx, KeyWindSpeedUnit)
	if err != nil {
		return weather.MPH, err
	}
	if !ok {
		return weather.MPH, nil
	}
	unit, err := weather.ParseWindSpeedUnit(v)
	if err != nil {
		return weather.MPH, nil
	}
	return unit, nil
}

// SetWindSpeedUnit stores the display wind speed unit
func (l *Local) SetWindSpeedUnit(ctx context.Context, unit weather.WindSpeedUnit) error {
	if _, err := weather.ParseWindSpeedUnit(string(unit)); err != nil {
		return err
	}
	return l.store.Set(ctx, KeyWindSpeedUnit, string(unit))
}

// Clear removes every key owned by the client
func (l *Local) Clear(ctx context.Context) error {
	for _, key := range AllKeys {
		if err := l.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

func (l *Local) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, ok, err := l.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (l *Local) setJSON(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return l.store.Set(ctx, key, string(raw))
}
