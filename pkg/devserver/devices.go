package devserver

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sguter90/homenet/pkg/devices"
	"github.com/sguter90/homenet/pkg/models"
)

// devicePayload is the decoded body of device create and patch requests
type devicePayload struct {
	Name     *string              `json:"name"`
	Type     models.DeviceType    `json:"type"`
	Status   *models.DeviceStatus `json:"status"`
	Room     *string              `json:"room"`
	Value    *int                 `json:"value"`
	Color    *string              `json:"color"`
	Locked   *bool                `json:"locked"`
	Position *int                 `json:"position"`
}

func (p devicePayload) update() devices.Update {
	return devices.Update{
		Name:     p.Name,
		Room:     p.Room,
		Status:   p.Status,
		Value:    p.Value,
		Color:    p.Color,
		Locked:   p.Locked,
		Position: p.Position,
	}
}

// decodeDevicePayload validates the body against a schema and decodes it
func (s *Server) decodeDevicePayload(w http.ResponseWriter, r *http.Request, schema string) (devicePayload, bool) {
	var p devicePayload

	data, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return p, false
	}
	if err := s.validator.validate(schema, data); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return p, false
	}
	if err := decodeJSON(data, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return p, false
	}
	return p, true
}

func writeDeviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, devices.ErrFieldNotSupported) || errors.Is(err, devices.ErrOutOfRange) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeStoreError(w, err)
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	list, err := s.store.devices(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	p, ok := s.decodeDevicePayload(w, r, schemaDeviceCreate)
	if !ok {
		return
	}

	state, err := models.NewDeviceState(p.Type)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	device, err := devices.Apply(models.Device{Status: models.StatusOff, State: state}, p.update())
	if err != nil {
		writeDeviceError(w, err)
		return
	}

	device, err = s.store.addDevice(user.ID, device)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

// handleUpdateDevice merges the sent fields into the stored device
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := models.ID(mux.Vars(r)["id"])

	p, ok := s.decodeDevicePayload(w, r, schemaDevicePatch)
	if !ok {
		return
	}

	device, err := s.store.updateDevice(user.ID, id, func(d models.Device) (models.Device, error) {
		return devices.Apply(d, p.update())
	})
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, device)
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := models.ID(mux.Vars(r)["id"])

	if err := s.store.deleteDevice(user.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Device deleted"})
}
