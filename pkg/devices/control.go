// Package devices implements smart-home device control on top of the
// backend client and the local device cache.
package devices

import (
	"errors"
	"fmt"

	"github.com/sguter90/homenet/pkg/models"
)

// ErrFieldNotSupported is returned when an update sets a field the device
// type does not have
var ErrFieldNotSupported = errors.New("field not supported for device type")

// ErrOutOfRange is returned when a control value is outside its range
var ErrOutOfRange = errors.New("value out of range")

// Control ranges
const (
	MinThermostat = 50
	MaxThermostat = 90
	MinPercent    = 0
	MaxPercent    = 100
)

// Update is a partial device update. Nil fields are left unchanged.
type Update struct {
	Name     *string
	Room     *string
	Status   *models.DeviceStatus
	Value    *int
	Color    *string
	Locked   *bool
	Position *int
}

// IsEmpty reports whether the update changes nothing
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Room == nil && u.Status == nil && u.Value == nil &&
		u.Color == nil && u.Locked == nil && u.Position == nil
}

// Body renders the PATCH payload with only the set fields
func (u Update) Body() map[string]interface{} {
	body := map[string]interface{}{}
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Room != nil {
		body["room"] = *u.Room
	}
	if u.Status != nil {
		body["status"] = *u.Status
	}
	if u.Value != nil {
		body["value"] = *u.Value
	}
	if u.Color != nil {
		body["color"] = *u.Color
	}
	if u.Locked != nil {
		body["locked"] = *u.Locked
	}
	if u.Position != nil {
		body["position"] = *u.Position
	}
	return body
}

// Toggle flips the power status. The type-specific state is untouched.
func Toggle(d models.Device) models.Device {
	if d.IsOn() {
		d.Status = models.StatusOff
	} else {
		d.Status = models.StatusOn
	}
	return d
}

// ToggleUpdate returns the update that flips the device's power status
func ToggleUpdate(d models.Device) Update {
	status := Toggle(d).Status
	return Update{Status: &status}
}

// Apply validates u against the device type and returns the updated device
func Apply(d models.Device, u Update) (models.Device, error) {
	if u.Status != nil {
		if *u.Status != models.StatusOn && *u.Status != models.StatusOff {
			return d, fmt.Errorf("invalid status %q (valid: on, off)", *u.Status)
		}
		d.Status = *u.Status
	}
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Room != nil {
		d.Room = *u.Room
	}

	state, err := applyState(d.State, u)
	if err != nil {
		return d, err
	}
	d.State = state
	return d, nil
}

func applyState(state models.DeviceState, u Update) (models.DeviceState, error) {
	if state == nil {
		return nil, errors.New("device has no state")
	}
	kind := state.Type()

	reject := func(field string) error {
		return fmt.Errorf("%w: %s has no %s", ErrFieldNotSupported, kind, field)
	}

	switch s := state.(type) {
	case models.ThermostatState:
		if u.Color != nil {
			return nil, reject("color")
		}
		if u.Locked != nil {
			return nil, reject("locked")
		}
		if u.Position != nil {
			return nil, reject("position")
		}
		if u.Value != nil {
			if err := checkRange("value", *u.Value, MinThermostat, MaxThermostat); err != nil {
				return nil, err
			}
			s.Value = *u.Value
		}
		return s, nil

	case models.LightState:
		if u.Locked != nil {
			return nil, reject("locked")
		}
		if u.Position != nil {
			return nil, reject("position")
		}
		if u.Value != nil {
			if err := checkRange("brightness", *u.Value, MinPercent, MaxPercent); err != nil {
				return nil, err
			}
			s.Brightness = *u.Value
		}
		if u.Color != nil {
			s.Color = *u.Color
		}
		return s, nil

	case models.LockState:
		if u.Value != nil {
			return nil, reject("value")
		}
		if u.Color != nil {
			return nil, reject("color")
		}
		if u.Position != nil {
			return nil, reject("position")
		}
		if u.Locked != nil {
			s.Locked = *u.Locked
		}
		return s, nil

	case models.BlindState:
		if u.Value != nil {
			return nil, reject("value")
		}
		if u.Color != nil {
			return nil, reject("color")
		}
		if u.Locked != nil {
			return nil, reject("locked")
		}
		if u.Position != nil {
			if err := checkRange("position", *u.Position, MinPercent, MaxPercent); err != nil {
				return nil, err
			}
			s.Position = *u.Position
		}
		return s, nil

	default:
		// plug and camera only have power
		switch {
		case u.Value != nil:
			return nil, reject("value")
		case u.Color != nil:
			return nil, reject("color")
		case u.Locked != nil:
			return nil, reject("locked")
		case u.Position != nil:
			return nil, reject("position")
		}
		return state, nil
	}
}

func checkRange(field string, v, min, max int) error {
	if v < min || v > max {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrOutOfRange, field, min, max, v)
	}
	return nil
}

// Describe renders the type-specific state for display
func Describe(d models.Device) string {
	switch s := d.State.(type) {
	case models.ThermostatState:
		return fmt.Sprintf("%d°F", s.Value)
	case models.LightState:
		return fmt.Sprintf("%d%% %s", s.Brightness, s.Color)
	case models.LockState:
		if s.Locked {
			return "locked"
		}
		return "unlocked"
	case models.BlindState:
		return fmt.Sprintf("%d%% open", s.Position)
	default:
		return ""
	}
}
