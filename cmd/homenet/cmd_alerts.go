package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sguter90/homenet/pkg/alerts"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/spf13/cobra"
)

var (
	unreadOnlyFlag bool
	intervalFlag   time.Duration
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Weather alerts",
	Long:  `List, generate, acknowledge and watch weather alerts for your locations.`,
}

var alertsListCmd = &cobra.Command{
	Use:   "list [locationId...]",
	Short: "List alerts (all locations by default)",
	RunE:  runAlertsList,
}

var alertsGenerateCmd = &cobra.Command{
	Use:   "generate <locationId>",
	Short: "Evaluate a location's weather and raise alerts",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsGenerate,
}

var alertsReadCmd = &cobra.Command{
	Use:   "read <alertId>",
	Short: "Mark an alert as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsRead,
}

var alertsWatchCmd = &cobra.Command{
	Use:   "watch [locationId...]",
	Short: "Poll alerts until interrupted",
	Long: `Fetch alerts immediately and then at a fixed interval, printing new alerts
as they appear. Stop with Ctrl+C.`,
	RunE: runAlertsWatch,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsGenerateCmd)
	alertsCmd.AddCommand(alertsReadCmd)
	alertsCmd.AddCommand(alertsWatchCmd)

	alertsListCmd.Flags().BoolVar(&unreadOnlyFlag, "unread", false, "only show unread alerts")
	alertsWatchCmd.Flags().DurationVar(&intervalFlag, "interval", 0, "poll interval (default HOMENET_ALERT_POLL_INTERVAL)")
}

// alertLocations returns the ids given on the command line or every saved location
func alertLocations(ctx context.Context, a *app, args []string) ([]models.ID, error) {
	ids := make([]models.ID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, models.ID(arg))
	}
	if len(ids) > 0 {
		return ids, nil
	}

	locations, err := a.client.ListLocations(ctx)
	if err != nil {
		return nil, describeError("failed to list locations", err)
	}
	for _, l := range locations {
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func printAlert(al models.Alert) {
	marker := " "
	if !al.IsRead {
		marker = "●"
	}
	fmt.Printf("%s [%s] %-8s %-13s %s  (location %s, %s)\n",
		marker, al.ID, strings.ToUpper(al.Severity), al.AlertType, al.Message,
		al.LocationID, al.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func runAlertsList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	ids, err := alertLocations(ctx, a, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No locations saved yet.")
		return nil
	}

	list, err := alerts.ForLocations(a.client, ids...)(ctx)
	if err != nil {
		return describeError("failed to list alerts", err)
	}
	if unreadOnlyFlag {
		list = alerts.Unread(list)
	}
	if len(list) == 0 {
		fmt.Println("No alerts.")
		return nil
	}

	printHeader(fmt.Sprintf("Alerts (%d unread)", len(alerts.Unread(list))))
	for _, al := range list {
		printAlert(al)
	}
	printFooter()
	return nil
}

func runAlertsGenerate(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	created, err := a.client.GenerateAlerts(cmd.Context(), models.ID(args[0]))
	if err != nil {
		return describeError("failed to generate alerts", err)
	}
	if len(created) == 0 {
		fmt.Println("✓ No new alerts.")
		return nil
	}

	fmt.Printf("✓ %d new alert(s)\n", len(created))
	for _, al := range created {
		printAlert(al)
	}
	return nil
}

func runAlertsRead(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	if err := a.client.MarkAlertRead(cmd.Context(), models.ID(args[0])); err != nil {
		return describeError("failed to mark alert read", err)
	}

	fmt.Printf("✓ Alert %s marked as read\n", args[0])
	return nil
}

func runAlertsWatch(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	ids, err := alertLocations(ctx, a, args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No locations saved yet.")
		return nil
	}

	interval := intervalFlag
	if interval <= 0 {
		interval = a.cfg.AlertPollInterval
	}

	var seen []models.Alert
	poller := alerts.NewPoller(alerts.ForLocations(a.client, ids...),
		alerts.WithInterval(interval),
		alerts.OnUpdate(func(list []models.Alert) {
			for _, al := range alerts.Diff(seen, list) {
				printAlert(al)
			}
			seen = list
		}),
		alerts.OnError(func(err error) {
			fmt.Printf("⚠️  %v\n", describeError("failed to fetch alerts", err))
		}),
	)

	fmt.Printf("Watching alerts for %d location(s) every %s. Press Ctrl+C to stop.\n", len(ids), interval)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\nStopped.")
	return nil
}
