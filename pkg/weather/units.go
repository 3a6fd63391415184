package weather

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidUnit is returned when a unit string is not recognized
var ErrInvalidUnit = errors.New("invalid unit")

// TemperatureUnit is the display unit for temperatures
type TemperatureUnit string

// WindSpeedUnit is the display unit for wind speed
type WindSpeedUnit string

const (
	Fahrenheit TemperatureUnit = "fahrenheit"
	Celsius    TemperatureUnit = "celsius"

	MPH WindSpeedUnit = "mph"
	KMH WindSpeedUnit = "kmh"
)

const kmhPerMph = 1.60934

// ParseTemperatureUnit validates a temperature unit string
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch TemperatureUnit(s) {
	case Fahrenheit, Celsius:
		return TemperatureUnit(s), nil
	}
	return "", fmt.Errorf("%w: temperature unit %q (valid: fahrenheit, celsius)", ErrInvalidUnit, s)
}

// ParseWindSpeedUnit validates a wind speed unit string
func ParseWindSpeedUnit(s string) (WindSpeedUnit, error) {
	switch WindSpeedUnit(s) {
	case MPH, KMH:
		return WindSpeedUnit(s), nil
	}
	return "", fmt.Errorf("%w: wind speed unit %q (valid: mph, kmh)", ErrInvalidUnit, s)
}

// FahrenheitToCelsius converts °F to °C
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CelsiusToFahrenheit converts °C to °F
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// MphToKmh converts miles per hour to kilometres per hour
func MphToKmh(mph float64) float64 {
	return mph * kmhPerMph
}

// KmhToMph converts kilometres per hour to miles per hour
func KmhToMph(kmh float64) float64 {
	return kmh / kmhPerMph
}

// ConvertTemperature converts a stored Fahrenheit value into the display unit
func ConvertTemperature(f float64, unit TemperatureUnit) float64 {
	if unit == Celsius {
		return FahrenheitToCelsius(f)
	}
	return f
}

// ConvertWindSpeed converts a stored mph value into the display unit
func ConvertWindSpeed(mph float64, unit WindSpeedUnit) float64 {
	if unit == KMH {
		return MphToKmh(mph)
	}
	return mph
}

// FormatTemperature renders a Fahrenheit value for display, e.g. "72°F" or "22°C"
func FormatTemperature(f float64, unit TemperatureUnit) string {
	v := math.Round(ConvertTemperature(f, unit))
	if unit == Celsius {
		return fmt.Sprintf("%.0f°C", v)
	}
	return fmt.Sprintf("%.0f°F", v)
}

// FormatWindSpeed renders an mph value for display, e.g. "12 mph" or "19 km/h"
func FormatWindSpeed(mph float64, unit WindSpeedUnit) string {
	v := math.Round(ConvertWindSpeed(mph, unit))
	if unit == KMH {
		return fmt.Sprintf("%.0f km/h", v)
	}
	return fmt.Sprintf("%.0f mph", v)
}
