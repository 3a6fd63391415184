package models

// Weather is the display record of current conditions.
// Temperatures are always Fahrenheit and wind speed always mph;
// unit conversion happens at display time only.
type Weather struct {
	Temperature         float64 `json:"temperature"`
	FeelsLike           float64 `json:"feelsLike"`
	Condition           string  `json:"condition"`
	Icon                string  `json:"icon"`
	Humidity            int     `json:"humidity"`
	WindSpeed           float64 `json:"windSpeed"`
	WindDirection       int     `json:"windDirection"`
	Pressure            float64 `json:"pressure"`
	UVIndex             int     `json:"uvIndex"`
	Visibility          float64 `json:"visibility"`
	PrecipitationChance int     `json:"precipitationChance"`
	WeatherCode         int     `json:"weatherCode"`
}

// HourlyForecast is one step of the hourly forecast strip
type HourlyForecast struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	Condition           string  `json:"condition"`
	Icon                string  `json:"icon"`
	PrecipitationChance int     `json:"precipitationChance"`
}

// DailyForecast is one day of the daily forecast
type DailyForecast struct {
	Day                 string  `json:"day"`
	High                float64 `json:"high"`
	Low                 float64 `json:"low"`
	Condition           string  `json:"condition"`
	Icon                string  `json:"icon"`
	PrecipitationChance int     `json:"precipitationChance"`
}

// WeatherResponse is the payload of GET /weather/{locationId}
type WeatherResponse struct {
	LocationID ID                `json:"location_id"`
	Current    CurrentConditions `json:"current"`
	Hourly     []HourlyPoint     `json:"hourly"`
	Daily      []DailyPoint      `json:"daily"`
}

// CurrentConditions holds the current block of a weather response
type CurrentConditions struct {
	Temperature              float64 `json:"temperature"`
	ApparentTemperature      float64 `json:"apparent_temperature"`
	Humidity                 int     `json:"humidity"`
	WindSpeed                float64 `json:"wind_speed"`
	WindDirection            int     `json:"wind_direction"`
	Pressure                 float64 `json:"pressure"`
	UVIndex                  float64 `json:"uv_index"`
	Visibility               float64 `json:"visibility"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability int     `json:"precipitation_probability"`
}

// HourlyPoint is one entry of the hourly block of a weather response
type HourlyPoint struct {
	Time                     string  `json:"time"`
	Temperature              float64 `json:"temperature"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability int     `json:"precipitation_probability"`
}

// DailyPoint is one entry of the daily block of a weather response
type DailyPoint struct {
	Date                     string  `json:"date"`
	TemperatureMax           float64 `json:"temperature_max"`
	TemperatureMin           float64 `json:"temperature_min"`
	WeatherCode              int     `json:"weather_code"`
	PrecipitationProbability int     `json:"precipitation_probability"`
}
