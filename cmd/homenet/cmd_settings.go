package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
	"github.com/spf13/cobra"
)

var (
	unitSystemFlag          string
	themeFlag               string
	alertsEnabledFlag       bool
	emailNotificationsFlag  bool
	temperatureAlertsFlag   bool
	precipitationAlertsFlag bool
	windAlertsFlag          bool
	anomalyAlertsFlag       bool
)

var settingsFlagNames = []string{
	"unit-system", "theme", "alerts", "email-notifications",
	"temperature-alerts", "precipitation-alerts", "wind-alerts", "anomaly-alerts",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Account settings stored on the backend",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show account settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change account settings",
	Long: `Change account settings. Only the flags given are modified.

Example:
  homenet settings set --unit-system metric --wind-alerts=false`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Display preferences stored on this machine",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show local display preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsDarkModeCmd = &cobra.Command{
	Use:       "dark-mode <on|off>",
	Short:     "Toggle dark mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runPrefsDarkMode,
}

var prefsTemperatureCmd = &cobra.Command{
	Use:   "temperature-unit <fahrenheit|celsius>",
	Short: "Set the temperature display unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsTemperature,
}

var prefsWindCmd = &cobra.Command{
	Use:   "wind-unit <mph|kmh>",
	Short: "Set the wind speed display unit",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsWind,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	flags := settingsSetCmd.Flags()
	flags.StringVar(&unitSystemFlag, "unit-system", "", "imperial or metric")
	flags.StringVar(&themeFlag, "theme", "", "light or dark")
	flags.BoolVar(&alertsEnabledFlag, "alerts", true, "enable weather alerts")
	flags.BoolVar(&emailNotificationsFlag, "email-notifications", false, "send alerts by email")
	flags.BoolVar(&temperatureAlertsFlag, "temperature-alerts", true, "raise temperature alerts")
	flags.BoolVar(&precipitationAlertsFlag, "precipitation-alerts", true, "raise precipitation alerts")
	flags.BoolVar(&windAlertsFlag, "wind-alerts", true, "raise wind alerts")
	flags.BoolVar(&anomalyAlertsFlag, "anomaly-alerts", false, "raise anomaly alerts")

	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsDarkModeCmd)
	prefsCmd.AddCommand(prefsTemperatureCmd)
	prefsCmd.AddCommand(prefsWindCmd)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	s, err := a.client.GetSettings(cmd.Context())
	if err != nil {
		return describeError("failed to load settings", err)
	}

	printHeader("Settings")
	fmt.Printf("Unit system:          %s\n", s.UnitSystem)
	fmt.Printf("Theme:                %s\n", s.Theme)
	fmt.Printf("Alerts:               %s\n", onOff(s.AlertsEnabled))
	fmt.Printf("Email notifications:  %s\n", onOff(s.EmailNotifications))
	fmt.Printf("Temperature alerts:   %s\n", onOff(s.TemperatureAlerts))
	fmt.Printf("Precipitation alerts: %s\n", onOff(s.PrecipitationAlerts))
	fmt.Printf("Wind alerts:          %s\n", onOff(s.WindAlerts))
	fmt.Printf("Anomaly alerts:       %s\n", onOff(s.AnomalyAlerts))
	printFooter()
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()
	flags := cmd.Flags()

	changed := false
	for _, name := range settingsFlagNames {
		changed = changed || flags.Changed(name)
	}
	if !changed {
		return fmt.Errorf("nothing to change, see --help")
	}

	current, err := a.client.GetSettings(ctx)
	if err != nil {
		return describeError("failed to load settings", err)
	}
	s := *current

	if flags.Changed("unit-system") {
		s.UnitSystem = unitSystemFlag
	}
	if flags.Changed("theme") {
		s.Theme = themeFlag
	}
	if flags.Changed("alerts") {
		s.AlertsEnabled = alertsEnabledFlag
	}
	if flags.Changed("email-notifications") {
		s.EmailNotifications = emailNotificationsFlag
	}
	if flags.Changed("temperature-alerts") {
		s.TemperatureAlerts = temperatureAlertsFlag
	}
	if flags.Changed("precipitation-alerts") {
		s.PrecipitationAlerts = precipitationAlertsFlag
	}
	if flags.Changed("wind-alerts") {
		s.WindAlerts = windAlertsFlag
	}
	if flags.Changed("anomaly-alerts") {
		s.AnomalyAlerts = anomalyAlertsFlag
	}

	saved, err := a.client.UpdateSettings(ctx, s)
	if err != nil {
		return describeError("failed to save settings", err)
	}

	// Mirror the account preferences into the local display settings
	if flags.Changed("unit-system") {
		tempUnit, windUnit := weather.Fahrenheit, weather.MPH
		if saved.UnitSystem == models.UnitSystemMetric {
			tempUnit, windUnit = weather.Celsius, weather.KMH
		}
		if err := a.local.SetTemperatureUnit(ctx, tempUnit); err != nil {
			log.Warn().Err(err).Msg("Failed to store temperature unit")
		}
		if err := a.local.SetWindSpeedUnit(ctx, windUnit); err != nil {
			log.Warn().Err(err).Msg("Failed to store wind speed unit")
		}
	}
	if flags.Changed("theme") {
		if err := a.local.SetDarkMode(ctx, saved.Theme == "dark"); err != nil {
			log.Warn().Err(err).Msg("Failed to store dark mode")
		}
	}

	fmt.Println("✓ Settings saved")
	return nil
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	darkMode, err := a.local.DarkMode(ctx)
	if err != nil {
		return err
	}
	tempUnit, windUnit := displayUnits(ctx, a.local)

	printHeader("Display Preferences")
	fmt.Printf("Dark mode:        %s\n", onOff(darkMode))
	fmt.Printf("Temperature unit: %s\n", tempUnit)
	fmt.Printf("Wind speed unit:  %s\n", windUnit)
	printFooter()
	return nil
}

func runPrefsDarkMode(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
	default:
		return fmt.Errorf("invalid value %q (valid: on, off)", args[0])
	}

	if err := a.local.SetDarkMode(cmd.Context(), enabled); err != nil {
		return err
	}
	fmt.Printf("✓ Dark mode %s\n", args[0])
	return nil
}

func runPrefsTemperature(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	unit, err := weather.ParseTemperatureUnit(args[0])
	if err != nil {
		return err
	}
	if err := a.local.SetTemperatureUnit(cmd.Context(), unit); err != nil {
		return err
	}
	fmt.Printf("✓ Temperatures shown in %s\n", unit)
	return nil
}

func runPrefsWind(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	unit, err := weather.ParseWindSpeedUnit(args[0])
	if err != nil {
		return err
	}
	if err := a.local.SetWindSpeedUnit(cmd.Context(), unit); err != nil {
		return err
	}
	fmt.Printf("✓ Wind speed shown in %s\n", unit)
	return nil
}
