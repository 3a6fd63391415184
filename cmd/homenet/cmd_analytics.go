package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/alerts"
	"github.com/sguter90/homenet/pkg/analytics"
	"github.com/sguter90/homenet/pkg/devices"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
	"github.com/spf13/cobra"
)

// maxBarWidth is the width of the longest chart bar
const maxBarWidth = 30

var analyticsCmd = &cobra.Command{
	Use:   "analytics <locationId>",
	Short: "Show charts for a location, your devices and alerts",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().BoolVar(&mockFlag, "mock", false, "use generated weather instead of the backend")
}

func bar(value, top float64) string {
	if top <= 0 || value <= 0 {
		return ""
	}
	n := int(value / top * maxBarWidth)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func printCounts(title string, counts []analytics.Count) {
	fmt.Printf("\n%s\n", title)
	if len(counts) == 0 {
		fmt.Println("  none")
		return
	}
	top := 0
	for _, c := range counts {
		if c.Value > top {
			top = c.Value
		}
	}
	for _, c := range counts {
		fmt.Printf("  %-14s %3d %s\n", c.Label, c.Value, bar(float64(c.Value), float64(top)))
	}
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()
	id := models.ID(args[0])

	loc, err := loadLocation(ctx, a, id, mockFlag)
	if err != nil {
		return err
	}
	tempUnit, _ := displayUnits(ctx, a.local)

	printHeader(fmt.Sprintf("Analytics: %s", loc.City.Name))

	series := analytics.TemperatureSeries(loc.Daily, tempUnit)
	maxHigh := 0.0
	for _, h := range series.Highs {
		if h > maxHigh {
			maxHigh = h
		}
	}
	fmt.Println("\nTemperature (high / low)")
	for i, label := range series.Labels {
		fmt.Printf("  %-10s %6.1f / %-6.1f %s\n", label, series.Highs[i], series.Lows[i], bar(series.Highs[i], maxHigh))
	}

	summary := analytics.Summary(loc.Daily)
	fmt.Printf("\nRange %s to %s, average high %s, average low %s, %d rainy day(s)\n",
		weather.FormatTemperature(summary.MinLow, tempUnit),
		weather.FormatTemperature(summary.MaxHigh, tempUnit),
		weather.FormatTemperature(summary.AvgHigh, tempUnit),
		weather.FormatTemperature(summary.AvgLow, tempUnit),
		summary.RainyDays)

	labels, temps := analytics.HourlySeries(loc.Hourly, tempUnit)
	fmt.Println("\nHourly")
	for i, label := range labels {
		fmt.Printf("  %s %6.1f\n", label, temps[i])
	}

	deviceList, err := devices.NewService(a.client, a.local).List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list devices, using cache")
	}
	stats := analytics.DeviceBreakdown(deviceList)
	fmt.Printf("\nDevices: %d total, %d on, %d off\n", stats.Total, stats.On, stats.Off)
	printCounts("By type", stats.ByType)
	printCounts("By room", stats.ByRoom)

	if !mockFlag {
		alertList, err := alerts.ForLocations(a.client, id)(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to list alerts")
		}
		alertStats := analytics.AlertBreakdown(alertList)
		fmt.Printf("\nAlerts: %d total, %d unread\n", alertStats.Total, alertStats.Unread)
		printCounts("By severity", alertStats.BySeverity)
		printCounts("By type", alertStats.ByType)
	}

	printFooter()
	return nil
}
