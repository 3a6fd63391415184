package devices

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sguter90/homenet/pkg/models"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

func TestToggleKeepsState(t *testing.T) {
	blind := models.Device{ID: "1", Name: "Blind", Status: models.StatusOn, State: models.BlindState{Position: 40}}

	off := Toggle(blind)
	if off.Status != models.StatusOff {
		t.Errorf("Expected status off, got %s", off.Status)
	}
	if off.State != (models.BlindState{Position: 40}) {
		t.Errorf("Expected position to be unchanged, got %+v", off.State)
	}

	on := Toggle(off)
	if on.Status != models.StatusOn {
		t.Errorf("Expected status on, got %s", on.Status)
	}
	if blind.Status != models.StatusOn {
		t.Error("Expected Toggle not to mutate its argument")
	}
}

func TestApply(t *testing.T) {
	thermostat := models.Device{ID: "1", State: models.ThermostatState{Value: 72}}
	light := models.Device{ID: "2", State: models.LightState{Brightness: 100, Color: "#ffffff"}}
	lock := models.Device{ID: "3", State: models.LockState{Locked: true}}
	blind := models.Device{ID: "4", State: models.BlindState{Position: 0}}
	plug := models.Device{ID: "5", State: models.PlugState{}}

	testCases := []struct {
		name      string
		device    models.Device
		update    Update
		wantState models.DeviceState
		wantErr   error
	}{
		{name: "Thermostat value", device: thermostat, update: Update{Value: intp(68)}, wantState: models.ThermostatState{Value: 68}},
		{name: "Thermostat too cold", device: thermostat, update: Update{Value: intp(45)}, wantErr: ErrOutOfRange},
		{name: "Thermostat too hot", device: thermostat, update: Update{Value: intp(91)}, wantErr: ErrOutOfRange},
		{name: "Thermostat color", device: thermostat, update: Update{Color: strp("#000000")}, wantErr: ErrFieldNotSupported},
		{name: "Light brightness and color", device: light, update: Update{Value: intp(30), Color: strp("#ff0000")}, wantState: models.LightState{Brightness: 30, Color: "#ff0000"}},
		{name: "Light brightness over 100", device: light, update: Update{Value: intp(101)}, wantErr: ErrOutOfRange},
		{name: "Light locked", device: light, update: Update{Locked: boolp(true)}, wantErr: ErrFieldNotSupported},
		{name: "Unlock", device: lock, update: Update{Locked: boolp(false)}, wantState: models.LockState{Locked: false}},
		{name: "Lock position", device: lock, update: Update{Position: intp(3)}, wantErr: ErrFieldNotSupported},
		{name: "Blind position", device: blind, update: Update{Position: intp(75)}, wantState: models.BlindState{Position: 75}},
		{name: "Blind negative position", device: blind, update: Update{Position: intp(-1)}, wantErr: ErrOutOfRange},
		{name: "Blind value", device: blind, update: Update{Value: intp(10)}, wantErr: ErrFieldNotSupported},
		{name: "Plug value", device: plug, update: Update{Value: intp(1)}, wantErr: ErrFieldNotSupported},
		{name: "Plug rename", device: plug, update: Update{Name: strp("Kettle")}, wantState: models.PlugState{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.device, tc.update)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got.State, tc.wantState) {
				t.Errorf("Expected state %+v, got %+v", tc.wantState, got.State)
			}
		})
	}
}

func TestApplyInvalidStatus(t *testing.T) {
	status := models.DeviceStatus("standby")
	_, err := Apply(models.Device{State: models.PlugState{}}, Update{Status: &status})
	if err == nil {
		t.Error("Expected error for invalid status")
	}
}

func TestUpdateBody(t *testing.T) {
	on := models.StatusOn
	u := Update{Status: &on, Position: intp(20)}

	want := map[string]interface{}{"status": models.StatusOn, "position": 20}
	if got := u.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if !(Update{}).IsEmpty() {
		t.Error("Expected zero update to be empty")
	}
	if u.IsEmpty() {
		t.Error("Expected update with fields to be non-empty")
	}
}

func TestDescribe(t *testing.T) {
	testCases := []struct {
		state models.DeviceState
		want  string
	}{
		{models.ThermostatState{Value: 70}, "70°F"},
		{models.LightState{Brightness: 50, Color: "#ffffff"}, "50% #ffffff"},
		{models.LockState{Locked: true}, "locked"},
		{models.LockState{}, "unlocked"},
		{models.BlindState{Position: 25}, "25% open"},
		{models.CameraState{}, ""},
	}

	for _, tc := range testCases {
		if got := Describe(models.Device{State: tc.state}); got != tc.want {
			t.Errorf("Describe(%T): expected %q, got %q", tc.state, tc.want, got)
		}
	}
}
