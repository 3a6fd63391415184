package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DeviceType identifies the kind of smart-home device
type DeviceType string

const (
	DeviceTypeThermostat DeviceType = "thermostat"
	DeviceTypeLight      DeviceType = "light"
	DeviceTypePlug       DeviceType = "plug"
	DeviceTypeLock       DeviceType = "lock"
	DeviceTypeBlind      DeviceType = "blind"
	DeviceTypeCamera     DeviceType = "camera"
)

// DeviceTypes lists every supported device type in display order
var DeviceTypes = []DeviceType{
	DeviceTypeThermostat,
	DeviceTypeLight,
	DeviceTypePlug,
	DeviceTypeLock,
	DeviceTypeBlind,
	DeviceTypeCamera,
}

// DeviceStatus is the on/off power state shared by all device types
type DeviceStatus string

const (
	StatusOn  DeviceStatus = "on"
	StatusOff DeviceStatus = "off"
)

// ErrUnknownDeviceType is returned when a device type is not supported
var ErrUnknownDeviceType = errors.New("unknown device type")

// Defaults applied when a type-specific field is absent on the wire
const (
	DefaultThermostatValue = 72
	DefaultBrightness      = 100
	DefaultLightColor      = "#ffffff"
)

// DeviceState is the type-specific control surface of a device.
// Each device type carries exactly the fields it supports.
type DeviceState interface {
	Type() DeviceType
	encode(w *deviceWire)
}

// ThermostatState holds the target temperature in Fahrenheit
type ThermostatState struct {
	Value int
}

// LightState holds brightness (0-100) and color
type LightState struct {
	Brightness int
	Color      string
}

// LockState holds whether the lock is engaged
type LockState struct {
	Locked bool
}

// BlindState holds the blind opening position (0-100)
type BlindState struct {
	Position int
}

// PlugState has no controls beyond power
type PlugState struct{}

// CameraState has no controls beyond power
type CameraState struct{}

func (ThermostatState) Type() DeviceType { return DeviceTypeThermostat }
func (LightState) Type() DeviceType      { return DeviceTypeLight }
func (LockState) Type() DeviceType       { return DeviceTypeLock }
func (BlindState) Type() DeviceType      { return DeviceTypeBlind }
func (PlugState) Type() DeviceType       { return DeviceTypePlug }
func (CameraState) Type() DeviceType     { return DeviceTypeCamera }

func (s ThermostatState) encode(w *deviceWire) { w.Value = intPtr(s.Value) }

// color is always written so a decoded light keeps an empty color
func (s LightState) encode(w *deviceWire) {
	w.Value = intPtr(s.Brightness)
	color := s.Color
	w.Color = &color
}

func (s LockState) encode(w *deviceWire) {
	locked := s.Locked
	w.Locked = &locked
}

func (s BlindState) encode(w *deviceWire) { w.Position = intPtr(s.Position) }
func (PlugState) encode(*deviceWire)      {}
func (CameraState) encode(*deviceWire)    {}

// NewDeviceState returns the default state for a device type
func NewDeviceState(t DeviceType) (DeviceState, error) {
	switch t {
	case DeviceTypeThermostat:
		return ThermostatState{Value: DefaultThermostatValue}, nil
	case DeviceTypeLight:
		return LightState{Brightness: DefaultBrightness, Color: DefaultLightColor}, nil
	case DeviceTypeLock:
		return LockState{Locked: true}, nil
	case DeviceTypeBlind:
		return BlindState{}, nil
	case DeviceTypePlug:
		return PlugState{}, nil
	case DeviceTypeCamera:
		return CameraState{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeviceType, t)
	}
}

// ParseDeviceType validates a device type string
func ParseDeviceType(s string) (DeviceType, error) {
	for _, t := range DeviceTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDeviceType, s)
}

// Device is a smart-home device record
type Device struct {
	ID        ID
	Name      string
	Status    DeviceStatus
	Room      string
	State     DeviceState
	CreatedAt time.Time
}

// Type returns the device type derived from its state
func (d Device) Type() DeviceType {
	if d.State == nil {
		return ""
	}
	return d.State.Type()
}

// IsOn reports whether the device is powered on
func (d Device) IsOn() bool {
	return d.Status == StatusOn
}

// deviceWire is the flat JSON shape used by the backend and local cache
type deviceWire struct {
	ID        ID           `json:"id,omitempty"`
	Name      string       `json:"name"`
	Type      DeviceType   `json:"type"`
	Status    DeviceStatus `json:"status"`
	Room      string       `json:"room"`
	Value     *int         `json:"value,omitempty"`
	Color     *string      `json:"color,omitempty"`
	Locked    *bool        `json:"locked,omitempty"`
	Position  *int         `json:"position,omitempty"`
	CreatedAt *time.Time   `json:"created_at,omitempty"`
}

// MarshalJSON renders the device in its flat wire shape
func (d Device) MarshalJSON() ([]byte, error) {
	if d.State == nil {
		return nil, fmt.Errorf("device %q has no state", d.ID)
	}

	w := deviceWire{
		ID:     d.ID,
		Name:   d.Name,
		Type:   d.State.Type(),
		Status: d.Status,
		Room:   d.Room,
	}
	if !d.CreatedAt.IsZero() {
		createdAt := d.CreatedAt
		w.CreatedAt = &createdAt
	}
	d.State.encode(&w)

	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat wire shape into the typed state.
// Fields that do not belong to the device type are ignored.
func (d *Device) UnmarshalJSON(data []byte) error {
	var w deviceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	state, err := NewDeviceState(w.Type)
	if err != nil {
		return err
	}

	switch s := state.(type) {
	case ThermostatState:
		if w.Value != nil {
			s.Value = *w.Value
		}
		state = s
	case LightState:
		if w.Value != nil {
			s.Brightness = *w.Value
		}
		if w.Color != nil {
			s.Color = *w.Color
		}
		state = s
	case LockState:
		if w.Locked != nil {
			s.Locked = *w.Locked
		}
		state = s
	case BlindState:
		if w.Position != nil {
			s.Position = *w.Position
		}
		state = s
	}

	status := w.Status
	if status == "" {
		status = StatusOff
	}

	*d = Device{
		ID:     w.ID,
		Name:   w.Name,
		Status: status,
		Room:   w.Room,
		State:  state,
	}
	if w.CreatedAt != nil {
		d.CreatedAt = *w.CreatedAt
	}
	return nil
}

// DeviceCreate is the payload of POST /devices
type DeviceCreate struct {
	Name   string
	Room   string
	Status DeviceStatus
	State  DeviceState
}

// MarshalJSON renders the create payload in the flat wire shape
func (c DeviceCreate) MarshalJSON() ([]byte, error) {
	status := c.Status
	if status == "" {
		status = StatusOff
	}
	return Device{Name: c.Name, Room: c.Room, Status: status, State: c.State}.MarshalJSON()
}

func intPtr(v int) *int {
	return &v
}
