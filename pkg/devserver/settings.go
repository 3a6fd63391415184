package devserver

import (
	"net/http"

	"github.com/sguter90/homenet/pkg/models"
)

func validateSettings(settings models.UserSettings) string {
	switch settings.UnitSystem {
	case models.UnitSystemImperial, models.UnitSystemMetric:
	default:
		return "unit_system must be imperial or metric"
	}
	switch settings.Theme {
	case "light", "dark":
	default:
		return "theme must be light or dark"
	}
	return ""
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	settings, err := s.store.settings(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var settings models.UserSettings
	if err := decodeBody(w, r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateSettings(settings); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := s.store.setSettings(user.ID, settings); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleDeleteUserData removes every record of the user. The account and
// its credentials remain.
func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	if err := s.store.wipe(user.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All user data deleted"})
}
