package weather

import (
	"fmt"
	"unicode/utf16"

	"github.com/sguter90/homenet/pkg/models"
)

// MockCondition is one entry of the fixed mock condition table
type MockCondition struct {
	Condition           string
	Icon                string
	PrecipitationChance int
	WeatherCode         int
}

// MockConditions is the ordered table the mock generator indexes into
var MockConditions = [9]MockCondition{
	{"Sunny", "☀️", 0, 0},
	{"Partly Cloudy", "⛅", 10, 2},
	{"Cloudy", "☁️", 20, 3},
	{"Overcast", "☁️", 30, 3},
	{"Light Rain", "🌦️", 60, 61},
	{"Rain", "🌧️", 80, 63},
	{"Thunderstorm", "⛈️", 90, 95},
	{"Foggy", "🌫️", 15, 45},
	{"Windy", "💨", 5, 1},
}

// Mock temperature bounds in Fahrenheit
const (
	MockMinTemperature = 55
	MockMaxTemperature = 85
	mockMinLow         = 40
)

// dailyLabels name the five mock forecast days relative to today
var dailyLabels = [5]string{"Today", "Tomorrow", "Day 3", "Day 4", "Day 5"}

// Seed derives the mock seed from a city id: the sum of its first two
// UTF-16 code units. Missing units count as zero.
func Seed(cityID string) int {
	units := utf16.Encode([]rune(cityID))
	seed := 0
	for i := 0; i < 2 && i < len(units); i++ {
		seed += int(units[i])
	}
	return seed
}

// GenerateMockWeather returns deterministic current conditions for a city id
func GenerateMockWeather(cityID string) models.Weather {
	seed := Seed(cityID)
	cond := MockConditions[seed%len(MockConditions)]
	temp := float64(MockMinTemperature + seed%31)

	return models.Weather{
		Temperature:         temp,
		FeelsLike:           temp + float64(seed%5-2),
		Condition:           cond.Condition,
		Icon:                cond.Icon,
		Humidity:            50 + seed%30,
		WindSpeed:           float64(10 + seed%20),
		WindDirection:       (seed * 7) % 360,
		Pressure:            float64(1000 + seed%20),
		UVIndex:             seed % 11,
		Visibility:          float64(10 + seed%10),
		PrecipitationChance: cond.PrecipitationChance,
		WeatherCode:         cond.WeatherCode,
	}
}

// GenerateMockHourly returns 12 deterministic two-hour forecast steps
func GenerateMockHourly(cityID string) []models.HourlyForecast {
	seed := Seed(cityID)
	base := MockMinTemperature + seed%31

	hourly := make([]models.HourlyForecast, 0, 12)
	for i := 0; i < 12; i++ {
		s := seed + i*3
		cond := MockConditions[s%len(MockConditions)]
		hourly = append(hourly, models.HourlyForecast{
			Time:                fmt.Sprintf("%02d:00", i*2),
			Temperature:         float64(clamp(base+s%7-3, MockMinTemperature, MockMaxTemperature)),
			Condition:           cond.Condition,
			Icon:                cond.Icon,
			PrecipitationChance: cond.PrecipitationChance,
		})
	}
	return hourly
}

// GenerateMockDaily returns 5 deterministic daily forecasts
func GenerateMockDaily(cityID string) []models.DailyForecast {
	seed := Seed(cityID)
	base := MockMinTemperature + seed%31

	daily := make([]models.DailyForecast, 0, len(dailyLabels))
	for d, label := range dailyLabels {
		s := seed + d*5
		cond := MockConditions[s%len(MockConditions)]
		high := clamp(base+s%6, MockMinTemperature, MockMaxTemperature)
		low := clamp(high-8-s%5, mockMinLow, MockMaxTemperature)
		daily = append(daily, models.DailyForecast{
			Day:                 label,
			High:                float64(high),
			Low:                 float64(low),
			Condition:           cond.Condition,
			Icon:                cond.Icon,
			PrecipitationChance: cond.PrecipitationChance,
		})
	}
	return daily
}

// MockSavedLocation builds a fully populated dashboard card from mock data
func MockSavedLocation(id models.ID, city models.City) models.SavedLocation {
	key := string(id)
	return models.SavedLocation{
		ID:      id,
		City:    city,
		Weather: GenerateMockWeather(key),
		Hourly:  GenerateMockHourly(key),
		Daily:   GenerateMockDaily(key),
	}
}

// MockResponse renders the mock generator output in the backend wire
// shape of GET /weather/{locationId}
func MockResponse(cityID string) models.WeatherResponse {
	seed := Seed(cityID)
	cur := GenerateMockWeather(cityID)

	resp := models.WeatherResponse{
		LocationID: models.ID(cityID),
		Current: models.CurrentConditions{
			Temperature:              cur.Temperature,
			ApparentTemperature:      cur.FeelsLike,
			Humidity:                 cur.Humidity,
			WindSpeed:                cur.WindSpeed,
			WindDirection:            cur.WindDirection,
			Pressure:                 cur.Pressure,
			UVIndex:                  float64(cur.UVIndex),
			Visibility:               cur.Visibility,
			WeatherCode:              cur.WeatherCode,
			PrecipitationProbability: cur.PrecipitationChance,
		},
	}

	for i, h := range GenerateMockHourly(cityID) {
		cond := MockConditions[(seed+i*3)%len(MockConditions)]
		resp.Hourly = append(resp.Hourly, models.HourlyPoint{
			Time:                     h.Time,
			Temperature:              h.Temperature,
			WeatherCode:              cond.WeatherCode,
			PrecipitationProbability: h.PrecipitationChance,
		})
	}

	for d, day := range GenerateMockDaily(cityID) {
		cond := MockConditions[(seed+d*5)%len(MockConditions)]
		resp.Daily = append(resp.Daily, models.DailyPoint{
			Date:                     day.Day,
			TemperatureMax:           day.High,
			TemperatureMin:           day.Low,
			WeatherCode:              cond.WeatherCode,
			PrecipitationProbability: day.PrecipitationChance,
		})
	}

	return resp
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
