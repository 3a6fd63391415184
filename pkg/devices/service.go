package devices

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/storage"
)

// Backend is the subset of the API client used for devices
type Backend interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	CreateDevice(ctx context.Context, device models.DeviceCreate) (*models.Device, error)
	UpdateDevice(ctx context.Context, id models.ID, patch map[string]interface{}) (*models.Device, error)
	DeleteDevice(ctx context.Context, id models.ID) error
}

// Service performs device operations against the backend and mirrors the
// resulting device list into local storage.
type Service struct {
	backend Backend
	local   *storage.Local
}

// NewService creates a device service
func NewService(backend Backend, local *storage.Local) *Service {
	return &Service{backend: backend, local: local}
}

// List fetches devices from the backend and refreshes the cache. When the
// backend fails the cached list is returned along with the error.
func (s *Service) List(ctx context.Context) ([]models.Device, error) {
	devices, err := s.backend.ListDevices(ctx)
	if err != nil {
		cached, cacheErr := s.local.Devices(ctx)
		if cacheErr != nil {
			log.Warn().Err(cacheErr).Msg("Failed to read cached devices")
			cached = []models.Device{}
		}
		return cached, err
	}

	if err := s.local.SetDevices(ctx, devices); err != nil {
		log.Warn().Err(err).Msg("Failed to cache devices")
	}
	return devices, nil
}

// Get returns the backend's current record of a device. The cached record
// is used only when the backend cannot be reached.
func (s *Service) Get(ctx context.Context, id models.ID) (models.Device, error) {
	devices, err := s.List(ctx)
	if d, ok := Find(devices, id); ok {
		if err != nil {
			log.Warn().Err(err).Str("device_id", id.String()).Msg("Using cached device")
		}
		return d, nil
	}
	if err != nil {
		return models.Device{}, err
	}
	return models.Device{}, fmt.Errorf("device %s not found", id)
}

// Add creates a device with the default state of its type
func (s *Service) Add(ctx context.Context, name, room string, deviceType models.DeviceType) (models.Device, error) {
	state, err := models.NewDeviceState(deviceType)
	if err != nil {
		return models.Device{}, err
	}

	created, err := s.backend.CreateDevice(ctx, models.DeviceCreate{
		Name:   name,
		Room:   room,
		Status: models.StatusOff,
		State:  state,
	})
	if err != nil {
		return models.Device{}, err
	}

	s.mirror(ctx, func(devices []models.Device) []models.Device {
		return append(devices, *created)
	})
	return *created, nil
}

// Toggle flips a device's power status as the backend currently reports it
func (s *Service) Toggle(ctx context.Context, id models.ID) (models.Device, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Device{}, err
	}
	return s.send(ctx, current, ToggleUpdate(current))
}

// Set validates and sends a partial update
func (s *Service) Set(ctx context.Context, id models.ID, u Update) (models.Device, error) {
	if u.IsEmpty() {
		return models.Device{}, fmt.Errorf("nothing to update")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Device{}, err
	}
	return s.send(ctx, current, u)
}

func (s *Service) send(ctx context.Context, current models.Device, u Update) (models.Device, error) {
	if _, err := Apply(current, u); err != nil {
		return models.Device{}, err
	}

	updated, err := s.backend.UpdateDevice(ctx, current.ID, u.Body())
	if err != nil {
		return models.Device{}, err
	}

	s.mirror(ctx, func(devices []models.Device) []models.Device {
		return replace(devices, *updated)
	})
	return *updated, nil
}

// Remove deletes a device
func (s *Service) Remove(ctx context.Context, id models.ID) error {
	if err := s.backend.DeleteDevice(ctx, id); err != nil {
		return err
	}

	s.mirror(ctx, func(devices []models.Device) []models.Device {
		out := devices[:0]
		for _, d := range devices {
			if d.ID != id {
				out = append(out, d)
			}
		}
		return out
	})
	return nil
}

// mirror merges a change into the cached list and writes it back whole
func (s *Service) mirror(ctx context.Context, change func([]models.Device) []models.Device) {
	devices, err := s.local.Devices(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read cached devices")
		devices = []models.Device{}
	}
	if err := s.local.SetDevices(ctx, change(devices)); err != nil {
		log.Warn().Err(err).Msg("Failed to cache devices")
	}
}

// Find returns the device with the given id
func Find(devices []models.Device, id models.ID) (models.Device, bool) {
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return models.Device{}, false
}

func replace(devices []models.Device, updated models.Device) []models.Device {
	for i, d := range devices {
		if d.ID == updated.ID {
			devices[i] = updated
			return devices
		}
	}
	return append(devices, updated)
}
