package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

func (s *Server) handleSearchLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusUnprocessableEntity, "query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, searchCities(query))
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	locations, err := s.store.locations(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func validateLocation(req models.LocationCreate) string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "name is required"
	case req.Latitude < -90 || req.Latitude > 90:
		return "latitude must be between -90 and 90"
	case req.Longitude < -180 || req.Longitude > 180:
		return "longitude must be between -180 and 180"
	}
	return ""
}

func (s *Server) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req models.LocationCreate
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateLocation(req); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	loc, err := s.store.addLocation(user.ID, req)
	if errors.Is(err, errLocationExists) {
		writeError(w, http.StatusBadRequest, "Location already saved")
		return
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := models.ID(mux.Vars(r)["id"])

	if err := s.store.deleteLocation(user.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Location deleted"})
}

// handleWeather serves generated weather for a saved location
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := models.ID(mux.Vars(r)["locationId"])

	if _, err := s.store.location(user.ID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weather.MockResponse(id.String()))
}

// writeStoreError maps store errors onto HTTP responses
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errRecordNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, errUnknownUserStore):
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
