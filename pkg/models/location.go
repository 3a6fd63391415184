package models

import "time"

// City is the geographic part of a saved location
type City struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// Location is a location record as stored by the backend
type Location struct {
	ID        ID        `json:"id,omitempty"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// City returns the geographic part of the location
func (l Location) City() City {
	return City{
		Name:     l.Name,
		Country:  l.Country,
		Lat:      l.Latitude,
		Lon:      l.Longitude,
		Timezone: l.Timezone,
	}
}

// LocationCreate is the payload of POST /locations
type LocationCreate struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// SavedLocation is a dashboard card: a location with display-formatted weather.
// It is cached locally under the locations key.
type SavedLocation struct {
	ID      ID               `json:"id"`
	City    City             `json:"city"`
	Weather Weather          `json:"weather"`
	Hourly  []HourlyForecast `json:"hourly"`
	Daily   []DailyForecast  `json:"daily"`
	AddedAt time.Time        `json:"addedAt"`
}
