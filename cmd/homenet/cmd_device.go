package main

import (
	"fmt"
	"strings"

	"github.com/sguter90/homenet/pkg/devices"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/spf13/cobra"
)

var (
	deviceTypeFlag string
	deviceRoomFlag string

	setName     string
	setRoom     string
	setStatus   string
	setValue    int
	setColor    string
	setLocked   bool
	setPosition int
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Control smart-home devices",
	Long:  `List, add, toggle, adjust and delete smart-home devices.`,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices",
	Args:  cobra.NoArgs,
	RunE:  runDeviceList,
}

var deviceAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a device",
	Long: `Add a device with the default state of its type. Types: thermostat, light,
plug, lock, blind, camera.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeviceAdd,
}

var deviceToggleCmd = &cobra.Command{
	Use:   "toggle <deviceId>",
	Short: "Switch a device on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceToggle,
}

var deviceSetCmd = &cobra.Command{
	Use:   "set <deviceId>",
	Short: "Change device fields",
	Long: `Send a partial update. Only the flags given are changed. --value is the
thermostat target (50-90 °F) or the light brightness (0-100), --position is
the blind opening (0-100).`,
	Args: cobra.ExactArgs(1),
	RunE: runDeviceSet,
}

var deviceDeleteCmd = &cobra.Command{
	Use:   "delete <deviceId>",
	Short: "Delete a device",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceDelete,
}

func init() {
	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceListCmd)
	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceToggleCmd)
	deviceCmd.AddCommand(deviceSetCmd)
	deviceCmd.AddCommand(deviceDeleteCmd)

	deviceAddCmd.Flags().StringVarP(&deviceTypeFlag, "type", "t", "", "device type (required)")
	deviceAddCmd.Flags().StringVarP(&deviceRoomFlag, "room", "r", "", "room")
	_ = deviceAddCmd.MarkFlagRequired("type")

	f := deviceSetCmd.Flags()
	f.StringVar(&setName, "name", "", "device name")
	f.StringVar(&setRoom, "room", "", "room")
	f.StringVar(&setStatus, "status", "", "on or off")
	f.IntVar(&setValue, "value", 0, "thermostat target or light brightness")
	f.StringVar(&setColor, "color", "", "light color, e.g. #ffaa00")
	f.BoolVar(&setLocked, "locked", false, "lock state")
	f.IntVar(&setPosition, "position", 0, "blind position")
}

func printDevice(d models.Device) {
	fmt.Printf("[%s] %-20s %-10s %-3s %-12s %s\n",
		d.ID, d.Name, d.Type(), strings.ToUpper(string(d.Status)), d.Room, devices.Describe(d))
}

func runDeviceList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	svc := devices.NewService(a.client, a.local)

	list, err := svc.List(cmd.Context())
	if err != nil {
		if len(list) == 0 {
			return describeError("failed to list devices", err)
		}
		fmt.Println("(offline: showing cached devices)")
	}
	if len(list) == 0 {
		fmt.Println("No devices yet. Add one with: homenet device add <name> --type light")
		return nil
	}

	printHeader("Devices")
	for _, d := range list {
		printDevice(d)
	}
	printFooter()
	return nil
}

func runDeviceAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	svc := devices.NewService(a.client, a.local)

	deviceType, err := models.ParseDeviceType(strings.ToLower(deviceTypeFlag))
	if err != nil {
		return err
	}

	d, err := svc.Add(cmd.Context(), args[0], deviceRoomFlag, deviceType)
	if err != nil {
		return describeError("failed to add device", err)
	}

	fmt.Printf("✓ Device created with ID: %s\n", d.ID)
	printDevice(d)
	return nil
}

func runDeviceToggle(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	svc := devices.NewService(a.client, a.local)

	d, err := svc.Toggle(cmd.Context(), models.ID(args[0]))
	if err != nil {
		return describeError("failed to toggle device", err)
	}

	fmt.Printf("✓ %s is now %s\n", d.Name, d.Status)
	return nil
}

// updateFromFlags builds a partial update from the flags that were set
func updateFromFlags(cmd *cobra.Command) devices.Update {
	var u devices.Update
	f := cmd.Flags()
	if f.Changed("name") {
		u.Name = &setName
	}
	if f.Changed("room") {
		u.Room = &setRoom
	}
	if f.Changed("status") {
		status := models.DeviceStatus(strings.ToLower(setStatus))
		u.Status = &status
	}
	if f.Changed("value") {
		u.Value = &setValue
	}
	if f.Changed("color") {
		u.Color = &setColor
	}
	if f.Changed("locked") {
		u.Locked = &setLocked
	}
	if f.Changed("position") {
		u.Position = &setPosition
	}
	return u
}

func runDeviceSet(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	svc := devices.NewService(a.client, a.local)

	u := updateFromFlags(cmd)
	if u.IsEmpty() {
		return fmt.Errorf("nothing to update: pass at least one of --name, --room, --status, --value, --color, --locked, --position")
	}

	d, err := svc.Set(cmd.Context(), models.ID(args[0]), u)
	if err != nil {
		return describeError("failed to update device", err)
	}

	fmt.Println("✓ Device updated")
	printDevice(d)
	return nil
}

func runDeviceDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	svc := devices.NewService(a.client, a.local)

	if err := svc.Remove(cmd.Context(), models.ID(args[0])); err != nil {
		return describeError("failed to delete device", err)
	}

	fmt.Printf("✓ Device %s deleted\n", args[0])
	return nil
}
