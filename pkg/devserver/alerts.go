package devserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

// Alert thresholds on current conditions
const (
	HeatThreshold          = 80.0
	WindThreshold          = 25.0
	UVThreshold            = 8.0
	PrecipitationThreshold = 60
)

// evaluateConditions derives alerts from a location's current weather.
// Disabled categories in settings are skipped.
func evaluateConditions(loc models.Location, cur models.CurrentConditions, settings models.UserSettings) []models.Alert {
	if !settings.AlertsEnabled {
		return nil
	}

	var out []models.Alert
	add := func(alertType, severity, message string) {
		out = append(out, models.Alert{
			LocationID: loc.ID,
			AlertType:  alertType,
			Severity:   severity,
			Message:    message,
		})
	}

	if settings.TemperatureAlerts && cur.Temperature >= HeatThreshold {
		severity := models.SeverityMedium
		if cur.Temperature >= 85 {
			severity = models.SeverityHigh
		}
		add(models.AlertTypeTemperature, severity,
			fmt.Sprintf("Heat advisory for %s: %.0f°F", loc.Name, cur.Temperature))
	}

	if settings.WindAlerts && cur.WindSpeed >= WindThreshold {
		severity := models.SeverityMedium
		if cur.WindSpeed >= 35 {
			severity = models.SeverityHigh
		}
		add(models.AlertTypeWind, severity,
			fmt.Sprintf("Strong winds in %s: %.0f mph", loc.Name, cur.WindSpeed))
	}

	if cur.UVIndex >= UVThreshold {
		severity := models.SeverityHigh
		if cur.UVIndex >= 11 {
			severity = models.SeverityCritical
		}
		add(models.AlertTypeUV, severity,
			fmt.Sprintf("Very high UV index in %s: %.0f", loc.Name, cur.UVIndex))
	}

	if settings.PrecipitationAlerts && cur.PrecipitationProbability >= PrecipitationThreshold {
		severity := models.SeverityMedium
		if cur.PrecipitationProbability >= 80 {
			severity = models.SeverityHigh
		}
		add(models.AlertTypePrecipitation, severity,
			fmt.Sprintf("%d%% chance of precipitation in %s", cur.PrecipitationProbability, loc.Name))
	}

	return out
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	locationID := models.ID(mux.Vars(r)["locationId"])

	if _, err := s.store.location(user.ID, locationID); err != nil {
		writeStoreError(w, err)
		return
	}

	alerts, err := s.store.alerts(user.ID, locationID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// handleGenerateAlerts evaluates current conditions and stores new alerts.
// A category that already has an unread alert is not raised again.
func (s *Server) handleGenerateAlerts(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	locationID := models.ID(mux.Vars(r)["locationId"])

	loc, err := s.store.location(user.ID, locationID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	settings, err := s.store.settings(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	existing, err := s.store.alerts(user.ID, locationID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	open := map[string]bool{}
	for _, a := range existing {
		if !a.IsRead {
			open[a.AlertType] = true
		}
	}

	var fresh []models.Alert
	for _, a := range evaluateConditions(loc, weather.MockResponse(loc.ID.String()).Current, settings) {
		if !open[a.AlertType] {
			fresh = append(fresh, a)
		}
	}

	created, err := s.store.addAlerts(user.ID, fresh)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	id := models.ID(mux.Vars(r)["id"])

	alert, err := s.store.markAlertRead(user.ID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}
