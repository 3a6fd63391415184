// Package analytics computes chart-ready aggregates over forecasts,
// devices and alerts.
package analytics

import (
	"math"
	"sort"

	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

// Series is a labelled temperature chart in the display unit
type Series struct {
	Unit   weather.TemperatureUnit
	Labels []string
	Highs  []float64
	Lows   []float64
}

// TemperatureSeries converts a daily forecast into chart series. Stored
// values stay in Fahrenheit; only the series is converted.
func TemperatureSeries(daily []models.DailyForecast, unit weather.TemperatureUnit) Series {
	if unit != weather.Celsius {
		unit = weather.Fahrenheit
	}
	s := Series{
		Unit:   unit,
		Labels: make([]string, 0, len(daily)),
		Highs:  make([]float64, 0, len(daily)),
		Lows:   make([]float64, 0, len(daily)),
	}
	for _, d := range daily {
		s.Labels = append(s.Labels, d.Day)
		s.Highs = append(s.Highs, round1(weather.ConvertTemperature(d.High, unit)))
		s.Lows = append(s.Lows, round1(weather.ConvertTemperature(d.Low, unit)))
	}
	return s
}

// HourlySeries converts an hourly forecast into a single temperature line
func HourlySeries(hourly []models.HourlyForecast, unit weather.TemperatureUnit) ([]string, []float64) {
	labels := make([]string, 0, len(hourly))
	temps := make([]float64, 0, len(hourly))
	for _, h := range hourly {
		labels = append(labels, h.Time)
		temps = append(temps, round1(weather.ConvertTemperature(h.Temperature, unit)))
	}
	return labels, temps
}

// TemperatureSummary aggregates daily highs and lows in Fahrenheit
type TemperatureSummary struct {
	MinLow  float64
	MaxHigh float64
	AvgHigh float64
	AvgLow  float64
	// RainyDays counts days with precipitation chance of at least 50%
	RainyDays int
}

// Summary aggregates a daily forecast. An empty forecast yields zeros.
func Summary(daily []models.DailyForecast) TemperatureSummary {
	if len(daily) == 0 {
		return TemperatureSummary{}
	}

	s := TemperatureSummary{MinLow: math.Inf(1), MaxHigh: math.Inf(-1)}
	var sumHigh, sumLow float64
	for _, d := range daily {
		s.MinLow = math.Min(s.MinLow, d.Low)
		s.MaxHigh = math.Max(s.MaxHigh, d.High)
		sumHigh += d.High
		sumLow += d.Low
		if d.PrecipitationChance >= 50 {
			s.RainyDays++
		}
	}
	n := float64(len(daily))
	s.AvgHigh = round1(sumHigh / n)
	s.AvgLow = round1(sumLow / n)
	return s
}

// Count is one bar of a breakdown chart
type Count struct {
	Label string
	Value int
}

// DeviceStats summarizes devices by type and power status
type DeviceStats struct {
	Total  int
	On     int
	Off    int
	ByType []Count
	ByRoom []Count
}

// DeviceBreakdown counts devices per type (in display order) and per room
func DeviceBreakdown(devices []models.Device) DeviceStats {
	stats := DeviceStats{Total: len(devices)}
	byType := map[models.DeviceType]int{}
	byRoom := map[string]int{}
	for _, d := range devices {
		if d.IsOn() {
			stats.On++
		} else {
			stats.Off++
		}
		byType[d.Type()]++
		room := d.Room
		if room == "" {
			room = "Unassigned"
		}
		byRoom[room]++
	}

	stats.ByType = []Count{}
	for _, t := range models.DeviceTypes {
		if n := byType[t]; n > 0 {
			stats.ByType = append(stats.ByType, Count{Label: string(t), Value: n})
		}
	}
	stats.ByRoom = sortedCounts(byRoom)
	return stats
}

// AlertStats summarizes alerts by severity and type
type AlertStats struct {
	Total      int
	Unread     int
	BySeverity []Count
	ByType     []Count
}

var severityOrder = []string{
	models.SeverityCritical,
	models.SeverityHigh,
	models.SeverityMedium,
	models.SeverityLow,
}

// AlertBreakdown counts alerts per severity (most severe first) and type
func AlertBreakdown(alerts []models.Alert) AlertStats {
	stats := AlertStats{Total: len(alerts)}
	bySeverity := map[string]int{}
	byType := map[string]int{}
	for _, a := range alerts {
		if !a.IsRead {
			stats.Unread++
		}
		bySeverity[a.Severity]++
		byType[a.AlertType]++
	}

	stats.BySeverity = []Count{}
	for _, sev := range severityOrder {
		if n := bySeverity[sev]; n > 0 {
			stats.BySeverity = append(stats.BySeverity, Count{Label: sev, Value: n})
			delete(bySeverity, sev)
		}
	}
	// unknown severities last
	stats.BySeverity = append(stats.BySeverity, sortedCounts(bySeverity)...)
	stats.ByType = sortedCounts(byType)
	return stats
}

func sortedCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, Value: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Value != counts[j].Value {
			return counts[i].Value > counts[j].Value
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
