package weather

// Condition is a human-readable weather condition with its emoji icon
type Condition struct {
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// UnknownCondition is returned for weather codes missing from the table
var UnknownCondition = Condition{Condition: "Unknown", Icon: "☀️"}

// wmoConditions maps WMO weather interpretation codes (as served by
// Open-Meteo) to display conditions
var wmoConditions = map[int]Condition{
	0:  {"Clear Sky", "☀️"},
	1:  {"Mainly Clear", "🌤️"},
	2:  {"Partly Cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing Rime Fog", "🌫️"},
	51: {"Light Drizzle", "🌦️"},
	53: {"Moderate Drizzle", "🌦️"},
	55: {"Dense Drizzle", "🌧️"},
	56: {"Light Freezing Drizzle", "🌨️"},
	57: {"Dense Freezing Drizzle", "🌨️"},
	61: {"Slight Rain", "🌦️"},
	63: {"Moderate Rain", "🌧️"},
	65: {"Heavy Rain", "🌧️"},
	66: {"Light Freezing Rain", "🌨️"},
	67: {"Heavy Freezing Rain", "🌨️"},
	71: {"Slight Snow", "🌨️"},
	73: {"Moderate Snow", "❄️"},
	75: {"Heavy Snow", "❄️"},
	77: {"Snow Grains", "🌨️"},
	80: {"Slight Rain Showers", "🌦️"},
	81: {"Moderate Rain Showers", "🌧️"},
	82: {"Violent Rain Showers", "⛈️"},
	85: {"Slight Snow Showers", "🌨️"},
	86: {"Heavy Snow Showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with Slight Hail", "⛈️"},
	99: {"Thunderstorm with Heavy Hail", "⛈️"},
}

// GetWeatherCondition maps a WMO weather code to a condition and icon
func GetWeatherCondition(code int) Condition {
	if c, ok := wmoConditions[code]; ok {
		return c
	}
	return UnknownCondition
}

// compassPoints are the 16 compass labels starting at north
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirectionLabel converts a bearing in degrees to a 16-point compass label
func WindDirectionLabel(degrees int) string {
	d := ((degrees % 360) + 360) % 360
	idx := int((float64(d) + 11.25) / 22.5)
	return compassPoints[idx%16]
}
