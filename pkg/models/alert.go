package models

import "time"

// Alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert types generated for a location
const (
	AlertTypeTemperature   = "temperature"
	AlertTypePrecipitation = "precipitation"
	AlertTypeWind          = "wind"
	AlertTypeUV            = "uv"
	AlertTypeAnomaly       = "anomaly"
)

// Alert is a weather alert tied to a location. Read state is the only
// mutable field.
type Alert struct {
	ID         ID        `json:"id"`
	LocationID ID        `json:"location_id,omitempty"`
	AlertType  string    `json:"alert_type"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}
