package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDevice_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantType  DeviceType
		wantState DeviceState
		wantErr   error
	}{
		{
			name:      "Thermostat with value",
			input:     `{"id":1,"name":"Hall","type":"thermostat","status":"on","room":"Hall","value":68}`,
			wantType:  DeviceTypeThermostat,
			wantState: ThermostatState{Value: 68},
		},
		{
			name:      "Thermostat without value uses default",
			input:     `{"id":"t2","name":"Hall","type":"thermostat","status":"on","room":"Hall"}`,
			wantType:  DeviceTypeThermostat,
			wantState: ThermostatState{Value: DefaultThermostatValue},
		},
		{
			name:      "Light with brightness and color",
			input:     `{"id":"l1","name":"Lamp","type":"light","status":"off","room":"Den","value":40,"color":"#ff0000"}`,
			wantType:  DeviceTypeLight,
			wantState: LightState{Brightness: 40, Color: "#ff0000"},
		},
		{
			name:      "Lock unlocked",
			input:     `{"id":"k1","name":"Front","type":"lock","status":"on","room":"Entry","locked":false}`,
			wantType:  DeviceTypeLock,
			wantState: LockState{Locked: false},
		},
		{
			name:      "Blind ignores foreign fields",
			input:     `{"id":"b1","name":"Blind","type":"blind","status":"on","room":"Bed","position":40,"color":"#000","locked":true}`,
			wantType:  DeviceTypeBlind,
			wantState: BlindState{Position: 40},
		},
		{
			name:      "Plug",
			input:     `{"id":"p1","name":"Kettle","type":"plug","status":"on","room":"Kitchen","value":3}`,
			wantType:  DeviceTypePlug,
			wantState: PlugState{},
		},
		{
			name:      "Camera",
			input:     `{"id":"c1","name":"Porch","type":"camera","status":"on","room":"Porch"}`,
			wantType:  DeviceTypeCamera,
			wantState: CameraState{},
		},
		{
			name:    "Unknown type",
			input:   `{"id":"x","name":"Toaster","type":"toaster","status":"on","room":"Kitchen"}`,
			wantErr: ErrUnknownDeviceType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Device
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if d.Type() != tc.wantType {
				t.Errorf("Expected type %s, got %s", tc.wantType, d.Type())
			}
			if !reflect.DeepEqual(d.State, tc.wantState) {
				t.Errorf("Expected state %#v, got %#v", tc.wantState, d.State)
			}
		})
	}
}

func TestDevice_MarshalJSON_OnlyTypeFields(t *testing.T) {
	d := Device{ID: "b1", Name: "Blind", Status: StatusOn, Room: "Bed", State: BlindState{Position: 40}}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Failed to marshal device: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}

	if raw["type"] != "blind" {
		t.Errorf("Expected type 'blind', got %v", raw["type"])
	}
	if raw["position"] != float64(40) {
		t.Errorf("Expected position 40, got %v", raw["position"])
	}
	for _, field := range []string{"value", "color", "locked"} {
		if _, ok := raw[field]; ok {
			t.Errorf("Expected field %q to be absent for a blind", field)
		}
	}

	var back Device
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal device: %v", err)
	}
	if !reflect.DeepEqual(back, d) {
		t.Errorf("Expected %#v, got %#v", d, back)
	}
}

func TestDevice_RoundTripEveryType(t *testing.T) {
	testCases := []struct {
		name  string
		state DeviceState
	}{
		{name: "Thermostat", state: ThermostatState{Value: 68}},
		{name: "Light without color", state: LightState{Brightness: 40}},
		{name: "Light with color", state: LightState{Brightness: 0, Color: "#00ff00"}},
		{name: "Unlocked lock", state: LockState{Locked: false}},
		{name: "Closed blind", state: BlindState{Position: 0}},
		{name: "Plug", state: PlugState{}},
		{name: "Camera", state: CameraState{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Device{ID: "7", Name: tc.name, Status: StatusOn, Room: "Hall", State: tc.state}

			data, err := json.Marshal(d)
			if err != nil {
				t.Fatalf("Failed to marshal device: %v", err)
			}
			var back Device
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Failed to unmarshal device: %v", err)
			}
			if !reflect.DeepEqual(back, d) {
				t.Errorf("Expected %#v, got %#v", d, back)
			}
		})
	}
}

func TestDevice_MarshalJSON_NoState(t *testing.T) {
	if _, err := json.Marshal(Device{ID: "x"}); err == nil {
		t.Error("Expected error for device without state")
	}
}

func TestDeviceCreate_DefaultsStatusOff(t *testing.T) {
	data, err := json.Marshal(DeviceCreate{Name: "Plug", Room: "Office", State: PlugState{}})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(data, &raw)
	if raw["status"] != "off" {
		t.Errorf("Expected status 'off', got %v", raw["status"])
	}
	if _, ok := raw["id"]; ok {
		t.Error("Expected id to be omitted on create")
	}
}

func TestParseDeviceType(t *testing.T) {
	for _, dt := range DeviceTypes {
		got, err := ParseDeviceType(string(dt))
		if err != nil || got != dt {
			t.Errorf("ParseDeviceType(%q) = %q, %v", dt, got, err)
		}
	}

	if _, err := ParseDeviceType("fridge"); !errors.Is(err, ErrUnknownDeviceType) {
		t.Errorf("Expected ErrUnknownDeviceType, got %v", err)
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "String", input: `"abc"`, want: "abc"},
		{name: "Integer", input: `42`, want: "42"},
		{name: "Null", input: `null`, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tc.input), &id); err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if id != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, id)
			}
		})
	}
}
