package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sguter90/homenet/pkg/dashboard"
	"github.com/sguter90/homenet/pkg/devices"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
	"github.com/spf13/cobra"
)

var (
	mockFlag         bool
	mockFallbackFlag bool
)

var weatherCmd = &cobra.Command{
	Use:   "weather <locationId>",
	Short: "Show weather for a saved location",
	Long: `Show current conditions, the hourly forecast and the 5-day forecast of a
saved location in your display units. --mock uses generated weather.`,
	Args: cobra.ExactArgs(1),
	RunE: runWeather,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show all locations and devices",
	Long: `Fetch the weather of every saved location concurrently together with your
devices. Locations whose weather fails to load are left out unless
--mock-fallback is set.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(dashboardCmd)

	weatherCmd.Flags().BoolVar(&mockFlag, "mock", false, "use generated weather instead of the backend")
	dashboardCmd.Flags().BoolVar(&mockFallbackFlag, "mock-fallback", false, "show generated weather for locations that fail to load")
}

// loadLocation fetches the weather of one location as a dashboard card
func loadLocation(ctx context.Context, a *app, id models.ID, mock bool) (models.SavedLocation, error) {
	city := models.City{Name: "Location " + id.String()}
	if cached, err := a.local.Locations(ctx); err == nil {
		for _, l := range cached {
			if l.ID == id {
				city = l.City
			}
		}
	}

	if mock {
		return weather.MockSavedLocation(id, city), nil
	}

	resp, err := a.client.GetWeather(ctx, id)
	if err != nil {
		return models.SavedLocation{}, describeError("failed to fetch weather", err)
	}
	current, hourly, daily := weather.FromResponse(*resp)
	return models.SavedLocation{
		ID:      id,
		City:    city,
		Weather: current,
		Hourly:  hourly,
		Daily:   daily,
		AddedAt: time.Now(),
	}, nil
}

func runWeather(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	loc, err := loadLocation(ctx, a, models.ID(args[0]), mockFlag)
	if err != nil {
		return err
	}
	tempUnit, windUnit := displayUnits(ctx, a.local)
	w := loc.Weather

	printHeader(fmt.Sprintf("%s %s, %s", w.Icon, loc.City.Name, loc.City.Country))
	fmt.Printf("%s %s (feels like %s)\n",
		weather.FormatTemperature(w.Temperature, tempUnit), w.Condition, weather.FormatTemperature(w.FeelsLike, tempUnit))
	fmt.Printf("Humidity:      %d%%\n", w.Humidity)
	fmt.Printf("Wind:          %s %s\n", weather.FormatWindSpeed(w.WindSpeed, windUnit), weather.WindDirectionLabel(w.WindDirection))
	fmt.Printf("Pressure:      %.0f hPa\n", w.Pressure)
	fmt.Printf("UV index:      %d\n", w.UVIndex)
	fmt.Printf("Visibility:    %.0f mi\n", w.Visibility)
	fmt.Printf("Precipitation: %d%%\n", w.PrecipitationChance)

	fmt.Println("\nHourly")
	for _, h := range loc.Hourly {
		fmt.Printf("  %s  %s %6s  %3d%%\n", h.Time, h.Icon, weather.FormatTemperature(h.Temperature, tempUnit), h.PrecipitationChance)
	}

	fmt.Println("\n5-Day Forecast")
	for _, d := range loc.Daily {
		fmt.Printf("  %-10s %s %6s / %-6s %s\n", d.Day, d.Icon,
			weather.FormatTemperature(d.High, tempUnit), weather.FormatTemperature(d.Low, tempUnit), d.Condition)
	}
	printFooter()
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	if !a.client.IsAuthenticated(ctx) {
		fmt.Println("Not logged in. Run: homenet login")
		return nil
	}

	builder := dashboard.NewBuilder(a.client, a.local, dashboard.WithMockFallback(mockFallbackFlag))
	dash, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	tempUnit, windUnit := displayUnits(ctx, a.local)

	printHeader("HomeNet Dashboard")
	if dash.Stale {
		fmt.Println("(offline: showing cached data)")
	}

	fmt.Println("\nLocations")
	if len(dash.Locations) == 0 {
		fmt.Println("  No locations to show.")
	}
	for _, loc := range dash.Locations {
		w := loc.Weather
		fmt.Printf("  [%s] %-20s %s %6s %-14s wind %s\n",
			loc.ID, loc.City.Name, w.Icon, weather.FormatTemperature(w.Temperature, tempUnit), w.Condition,
			weather.FormatWindSpeed(w.WindSpeed, windUnit))
	}
	if dash.Failed > 0 {
		fmt.Printf("  ⚠️  weather unavailable for %d location(s)\n", dash.Failed)
	}

	fmt.Println("\nDevices")
	if len(dash.Devices) == 0 {
		fmt.Println("  No devices yet.")
	}
	for _, d := range dash.Devices {
		fmt.Printf("  [%s] %-20s %-10s %-3s %s\n", d.ID, d.Name, d.Type(), strings.ToUpper(string(d.Status)), devices.Describe(d))
	}
	printFooter()
	return nil
}
