package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal() *Local {
	l := NewLocal(NewMemoryStore())
	l.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestLocalDefaults(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	token, err := l.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := l.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	locations, err := l.Locations(ctx)
	require.NoError(t, err)
	assert.NotNil(t, locations)
	assert.Len(t, locations, 0)

	devices, err := l.Devices(ctx)
	require.NoError(t, err)
	assert.NotNil(t, devices)

	rules, err := l.Rules(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rules)

	dark, err := l.DarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)

	tu, err := l.TemperatureUnit(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.Fahrenheit, tu)

	wu, err := l.WindSpeedUnit(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.MPH, wu)
}

func TestLocalTokenIsRawText(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	require.NoError(t, l.SetToken(ctx, "header.payload.sig"))
	raw, _, err := l.Store().Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", raw)

	require.NoError(t, l.ClearToken(ctx))
	token, _ := l.Token(ctx)
	assert.Empty(t, token)
}

func TestLocalDarkModeEncoding(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	require.NoError(t, l.SetDarkMode(ctx, true))
	raw, _, _ := l.Store().Get(ctx, KeyDarkMode)
	assert.Equal(t, "dark", raw)

	require.NoError(t, l.SetDarkMode(ctx, false))
	raw, _, _ = l.Store().Get(ctx, KeyDarkMode)
	assert.Equal(t, "light", raw)
}

func TestLocalRejectsInvalidUnits(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	assert.ErrorIs(t, l.SetTemperatureUnit(ctx, "kelvin"), weather.ErrInvalidUnit)
	assert.ErrorIs(t, l.SetWindSpeedUnit(ctx, "knots"), weather.ErrInvalidUnit)

	require.NoError(t, l.Store().Set(ctx, KeyTemperatureUnit, "kelvin"))
	tu, err := l.TemperatureUnit(ctx)
	require.NoError(t, err)
	assert.Equal(t, weather.Fahrenheit, tu)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestLocal()

	require.NoError(t, src.SetToken(ctx, "secret"))
	require.NoError(t, src.SetUser(ctx, models.User{ID: "1", Username: "alice", Email: "a@example.com"}))
	require.NoError(t, src.SetLocations(ctx, []models.SavedLocation{
		weather.MockSavedLocation("loc-1", models.City{Name: "Austin", Country: "US", Lat: 30.27, Lon: -97.74}),
	}))
	require.NoError(t, src.SetDevices(ctx, []models.Device{
		{ID: "7", Name: "Hall", Status: models.StatusOn, Room: "Hall", State: models.ThermostatState{Value: 70}},
		{ID: "8", Name: "Door", Status: models.StatusOff, Room: "Entry", State: models.LockState{Locked: true}},
	}))
	require.NoError(t, src.SetRules(ctx, []models.AutomationRule{
		{ID: "r1", Name: "Night", Trigger: "22:00", Action: "lock doors", Enabled: true, Devices: []string{"8"}},
	}))
	require.NoError(t, src.SetDarkMode(ctx, true))
	require.NoError(t, src.SetTemperatureUnit(ctx, weather.Celsius))
	require.NoError(t, src.SetWindSpeedUnit(ctx, weather.KMH))

	data, err := src.Export(ctx)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"user", "locations", "devices", "rules", "darkMode", "temperatureUnit", "windSpeedUnit", "exportDate"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, string(data), "secret")

	dst := newTestLocal()
	written, err := dst.Import(ctx, data)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user", "locations", "devices", "rules", "darkMode", "temperatureUnit", "windSpeedUnit"}, written)

	srcSnap, err := src.Snapshot(ctx)
	require.NoError(t, err)
	dstSnap, err := dst.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, srcSnap.User, dstSnap.User)
	assert.Equal(t, srcSnap.Devices, dstSnap.Devices)
	assert.Equal(t, srcSnap.Rules, dstSnap.Rules)
	assert.Equal(t, len(srcSnap.Locations), len(dstSnap.Locations))
	assert.Equal(t, srcSnap.Locations[0].City, dstSnap.Locations[0].City)
	assert.True(t, dstSnap.DarkMode)
	assert.Equal(t, weather.Celsius, dstSnap.TemperatureUnit)
	assert.Equal(t, weather.KMH, dstSnap.WindSpeedUnit)

	token, _ := dst.Token(ctx)
	assert.Empty(t, token)
}

func TestImportInvalidFormat(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "Not JSON", data: "not json"},
		{name: "Array", data: `[1,2,3]`},
		{name: "Null", data: `null`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLocal()
			_, err := l.Import(context.Background(), []byte(tc.data))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestImportSkipsMalformedAndUnknownKeys(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	data := `{
		"darkMode": "yes please",
		"temperatureUnit": "kelvin",
		"windSpeedUnit": "kmh",
		"devices": [{"id": 1, "name": "Fridge", "type": "fridge", "status": "on"}],
		"somethingElse": 42
	}`

	written, err := l.Import(ctx, []byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"windSpeedUnit"}, written)

	wu, _ := l.WindSpeedUnit(ctx)
	assert.Equal(t, weather.KMH, wu)
	tu, _ := l.TemperatureUnit(ctx)
	assert.Equal(t, weather.Fahrenheit, tu)
	devices, _ := l.Devices(ctx)
	assert.Empty(t, devices)
}

func TestImportSkipsUnrecognizedUnits(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	data := `{"darkMode": true, "temperatureUnit": "kelvin", "windSpeedUnit": "kmh"}`

	written, err := l.Import(ctx, []byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"darkMode", "windSpeedUnit"}, written)

	dark, _ := l.DarkMode(ctx)
	assert.True(t, dark)
	tu, _ := l.TemperatureUnit(ctx)
	assert.Equal(t, weather.Fahrenheit, tu)
	wu, _ := l.WindSpeedUnit(ctx)
	assert.Equal(t, weather.KMH, wu)
}

func TestExportImportRoundTrip_EveryDeviceType(t *testing.T) {
	ctx := context.Background()
	src := newTestLocal()

	devices := []models.Device{
		{ID: "1", Name: "Hall", Status: models.StatusOn, Room: "Hall", State: models.ThermostatState{Value: 64}},
		{ID: "2", Name: "Lamp", Status: models.StatusOn, Room: "Den", State: models.LightState{Brightness: 40}},
		{ID: "3", Name: "Strip", Status: models.StatusOff, Room: "Den", State: models.LightState{Brightness: 0, Color: "#123abc"}},
		{ID: "4", Name: "Door", Status: models.StatusOff, Room: "Entry", State: models.LockState{Locked: false}},
		{ID: "5", Name: "Blind", Status: models.StatusOn, Room: "Bed", State: models.BlindState{Position: 0}},
		{ID: "6", Name: "Kettle", Status: models.StatusOff, Room: "Kitchen", State: models.PlugState{}},
		{ID: "7", Name: "Porch", Status: models.StatusOn, Room: "Outside", State: models.CameraState{}},
	}
	require.NoError(t, src.SetDevices(ctx, devices))

	data, err := src.Export(ctx)
	require.NoError(t, err)

	dst := newTestLocal()
	_, err = dst.Import(ctx, data)
	require.NoError(t, err)

	got, err := dst.Devices(ctx)
	require.NoError(t, err)
	assert.Equal(t, devices, got)
}

func TestClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal()

	require.NoError(t, l.SetToken(ctx, "t"))
	require.NoError(t, l.SetDarkMode(ctx, true))
	require.NoError(t, l.SetRules(ctx, []models.AutomationRule{{ID: "r", Name: "x"}}))
	require.NoError(t, l.Clear(ctx))

	keys, err := l.Store().Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
