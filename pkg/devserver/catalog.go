package devserver

import (
	"strings"

	"github.com/sguter90/homenet/pkg/models"
)

// maxSearchResults bounds GET /locations/search
const maxSearchResults = 10

var cityCatalog = []models.City{
	{Name: "New York", Country: "US", Lat: 40.7128, Lon: -74.006, Timezone: "America/New_York"},
	{Name: "Los Angeles", Country: "US", Lat: 34.0522, Lon: -118.2437, Timezone: "America/Los_Angeles"},
	{Name: "Chicago", Country: "US", Lat: 41.8781, Lon: -87.6298, Timezone: "America/Chicago"},
	{Name: "Houston", Country: "US", Lat: 29.7604, Lon: -95.3698, Timezone: "America/Chicago"},
	{Name: "Phoenix", Country: "US", Lat: 33.4484, Lon: -112.074, Timezone: "America/Phoenix"},
	{Name: "Miami", Country: "US", Lat: 25.7617, Lon: -80.1918, Timezone: "America/New_York"},
	{Name: "Seattle", Country: "US", Lat: 47.6062, Lon: -122.3321, Timezone: "America/Los_Angeles"},
	{Name: "Denver", Country: "US", Lat: 39.7392, Lon: -104.9903, Timezone: "America/Denver"},
	{Name: "Austin", Country: "US", Lat: 30.2672, Lon: -97.7431, Timezone: "America/Chicago"},
	{Name: "Boston", Country: "US", Lat: 42.3601, Lon: -71.0589, Timezone: "America/New_York"},
	{Name: "San Francisco", Country: "US", Lat: 37.7749, Lon: -122.4194, Timezone: "America/Los_Angeles"},
	{Name: "Toronto", Country: "CA", Lat: 43.6532, Lon: -79.3832, Timezone: "America/Toronto"},
	{Name: "Vancouver", Country: "CA", Lat: 49.2827, Lon: -123.1207, Timezone: "America/Vancouver"},
	{Name: "Mexico City", Country: "MX", Lat: 19.4326, Lon: -99.1332, Timezone: "America/Mexico_City"},
	{Name: "London", Country: "GB", Lat: 51.5074, Lon: -0.1278, Timezone: "Europe/London"},
	{Name: "Paris", Country: "FR", Lat: 48.8566, Lon: 2.3522, Timezone: "Europe/Paris"},
	{Name: "Berlin", Country: "DE", Lat: 52.52, Lon: 13.405, Timezone: "Europe/Berlin"},
	{Name: "Vienna", Country: "AT", Lat: 48.2082, Lon: 16.3738, Timezone: "Europe/Vienna"},
	{Name: "Madrid", Country: "ES", Lat: 40.4168, Lon: -3.7038, Timezone: "Europe/Madrid"},
	{Name: "Rome", Country: "IT", Lat: 41.9028, Lon: 12.4964, Timezone: "Europe/Rome"},
	{Name: "Amsterdam", Country: "NL", Lat: 52.3676, Lon: 4.9041, Timezone: "Europe/Amsterdam"},
	{Name: "Oslo", Country: "NO", Lat: 59.9139, Lon: 10.7522, Timezone: "Europe/Oslo"},
	{Name: "Tokyo", Country: "JP", Lat: 35.6762, Lon: 139.6503, Timezone: "Asia/Tokyo"},
	{Name: "Seoul", Country: "KR", Lat: 37.5665, Lon: 126.978, Timezone: "Asia/Seoul"},
	{Name: "Singapore", Country: "SG", Lat: 1.3521, Lon: 103.8198, Timezone: "Asia/Singapore"},
	{Name: "Mumbai", Country: "IN", Lat: 19.076, Lon: 72.8777, Timezone: "Asia/Kolkata"},
	{Name: "Dubai", Country: "AE", Lat: 25.2048, Lon: 55.2708, Timezone: "Asia/Dubai"},
	{Name: "Sydney", Country: "AU", Lat: -33.8688, Lon: 151.2093, Timezone: "Australia/Sydney"},
	{Name: "Cape Town", Country: "ZA", Lat: -33.9249, Lon: 18.4241, Timezone: "Africa/Johannesburg"},
	{Name: "São Paulo", Country: "BR", Lat: -23.5505, Lon: -46.6333, Timezone: "America/Sao_Paulo"},
}

// searchCities matches the query case-insensitively against city names
// and country codes
func searchCities(query string) []models.City {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []models.City{}
	if q == "" {
		return results
	}

	for _, c := range cityCatalog {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.EqualFold(c.Country, q) {
			results = append(results, c)
			if len(results) == maxSearchResults {
				break
			}
		}
	}
	return results
}
