package devices

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend merges patches like the backend does
type fakeBackend struct {
	devices []models.Device
	nextID  int
	listErr error
	patches []map[string]interface{}
}

func (f *fakeBackend) ListDevices(context.Context) ([]models.Device, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Device(nil), f.devices...), nil
}

func (f *fakeBackend) CreateDevice(_ context.Context, c models.DeviceCreate) (*models.Device, error) {
	f.nextID++
	d := models.Device{ID: models.ID(strconv.Itoa(f.nextID)), Name: c.Name, Room: c.Room, Status: c.Status, State: c.State}
	f.devices = append(f.devices, d)
	return &d, nil
}

func (f *fakeBackend) UpdateDevice(_ context.Context, id models.ID, patch map[string]interface{}) (*models.Device, error) {
	f.patches = append(f.patches, patch)
	for i, d := range f.devices {
		if d.ID != id {
			continue
		}
		u := Update{}
		if v, ok := patch["status"].(models.DeviceStatus); ok {
			u.Status = &v
		}
		if v, ok := patch["value"].(int); ok {
			u.Value = &v
		}
		if v, ok := patch["position"].(int); ok {
			u.Position = &v
		}
		updated, err := Apply(d, u)
		if err != nil {
			return nil, err
		}
		f.devices[i] = updated
		return &updated, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) DeleteDevice(_ context.Context, id models.ID) error {
	for i, d := range f.devices {
		if d.ID == id {
			f.devices = append(f.devices[:i], f.devices[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	local := storage.NewLocal(storage.NewMemoryStore())
	svc := NewService(backend, local)

	therm, err := svc.Add(ctx, "Hall", "Hallway", models.DeviceTypeThermostat)
	require.NoError(t, err)
	assert.Equal(t, models.ThermostatState{Value: models.DefaultThermostatValue}, therm.State)
	assert.Equal(t, models.StatusOff, therm.Status)

	blind, err := svc.Add(ctx, "Shade", "Living", models.DeviceTypeBlind)
	require.NoError(t, err)

	cached, err := local.Devices(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2)

	toggled, err := svc.Toggle(ctx, blind.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOn, toggled.Status)
	assert.Equal(t, models.BlindState{Position: 0}, toggled.State)
	assert.Equal(t, map[string]interface{}{"status": models.StatusOn}, backend.patches[0])

	set, err := svc.Set(ctx, therm.ID, Update{Value: intp(65)})
	require.NoError(t, err)
	assert.Equal(t, models.ThermostatState{Value: 65}, set.State)

	cached, _ = local.Devices(ctx)
	d, ok := Find(cached, therm.ID)
	require.True(t, ok)
	assert.Equal(t, models.ThermostatState{Value: 65}, d.State)

	require.NoError(t, svc.Remove(ctx, blind.ID))
	cached, _ = local.Devices(ctx)
	assert.Len(t, cached, 1)
	assert.Len(t, backend.devices, 1)
}

func TestServiceSetRejectsBeforeSending(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{devices: []models.Device{
		{ID: "1", Name: "Door", Status: models.StatusOn, State: models.LockState{Locked: true}},
	}}
	svc := NewService(backend, storage.NewLocal(storage.NewMemoryStore()))

	_, err := svc.Set(ctx, "1", Update{Value: intp(70)})
	assert.ErrorIs(t, err, ErrFieldNotSupported)
	assert.Empty(t, backend.patches)

	_, err = svc.Set(ctx, "1", Update{})
	assert.Error(t, err)

	_, err = svc.Set(ctx, "404", Update{Locked: boolp(false)})
	assert.Error(t, err)
}

func TestServiceListFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	local := storage.NewLocal(storage.NewMemoryStore())
	cachedDevices := []models.Device{{ID: "9", Name: "Cam", Status: models.StatusOn, State: models.CameraState{}}}
	require.NoError(t, local.SetDevices(ctx, cachedDevices))

	backend := &fakeBackend{listErr: errors.New("backend down")}
	svc := NewService(backend, local)

	devices, err := svc.List(ctx)
	assert.Error(t, err)
	assert.Equal(t, cachedDevices, devices)

	backend.listErr = nil
	backend.devices = []models.Device{}
	devices, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, devices)
	cached, _ := local.Devices(ctx)
	assert.Empty(t, cached)
}

func TestServiceToggleUsesBackendStatus(t *testing.T) {
	ctx := context.Background()
	local := storage.NewLocal(storage.NewMemoryStore())
	require.NoError(t, local.SetDevices(ctx, []models.Device{
		{ID: "1", Name: "Plug", Status: models.StatusOn, State: models.PlugState{}},
	}))

	// switched off elsewhere since the cache was written
	backend := &fakeBackend{devices: []models.Device{
		{ID: "1", Name: "Plug", Status: models.StatusOff, State: models.PlugState{}},
	}}
	svc := NewService(backend, local)

	toggled, err := svc.Toggle(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOn, toggled.Status)
	require.Len(t, backend.patches, 1)
	assert.Equal(t, map[string]interface{}{"status": models.StatusOn}, backend.patches[0])

	cached, _ := local.Devices(ctx)
	d, ok := Find(cached, "1")
	require.True(t, ok)
	assert.Equal(t, models.StatusOn, d.Status)
}

func TestServiceGetFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	local := storage.NewLocal(storage.NewMemoryStore())
	require.NoError(t, local.SetDevices(ctx, []models.Device{
		{ID: "1", Name: "Door", Status: models.StatusOn, State: models.LockState{Locked: true}},
	}))
	svc := NewService(&fakeBackend{listErr: errors.New("backend down")}, local)

	d, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, models.LockState{Locked: true}, d.State)

	_, err = svc.Get(ctx, "2")
	assert.Error(t, err)
}

func TestServiceAddUnknownType(t *testing.T) {
	svc := NewService(&fakeBackend{}, storage.NewLocal(storage.NewMemoryStore()))
	_, err := svc.Add(context.Background(), "Fridge", "Kitchen", "fridge")
	assert.ErrorIs(t, err, models.ErrUnknownDeviceType)
}
