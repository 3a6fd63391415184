package models

// Unit systems understood by the backend
const (
	UnitSystemImperial = "imperial"
	UnitSystemMetric   = "metric"
)

// UserSettings is the preference record round-tripped verbatim with
// GET/PUT /settings
type UserSettings struct {
	UnitSystem          string `json:"unit_system"`
	AlertsEnabled       bool   `json:"alerts_enabled"`
	EmailNotifications  bool   `json:"email_notifications"`
	TemperatureAlerts   bool   `json:"temperature_alerts"`
	PrecipitationAlerts bool   `json:"precipitation_alerts"`
	WindAlerts          bool   `json:"wind_alerts"`
	AnomalyAlerts       bool   `json:"anomaly_alerts"`
	Theme               string `json:"theme"`
}

// DefaultSettings returns the settings of a freshly registered user
func DefaultSettings() UserSettings {
	return UserSettings{
		UnitSystem:          UnitSystemImperial,
		AlertsEnabled:       true,
		EmailNotifications:  false,
		TemperatureAlerts:   true,
		PrecipitationAlerts: true,
		WindAlerts:          true,
		AnomalyAlerts:       false,
		Theme:               "light",
	}
}
