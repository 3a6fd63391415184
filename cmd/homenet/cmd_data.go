package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sguter90/homenet/pkg/storage"
	"github.com/spf13/cobra"
)

var yesFlag bool

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import or delete your data",
}

var dataExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export cached data as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDataExport,
}

var dataImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataImport,
}

var dataDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete all of your data on the backend and on this machine",
	Args:  cobra.NoArgs,
	RunE:  runDataDelete,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataExportCmd)
	dataCmd.AddCommand(dataImportCmd)
	dataCmd.AddCommand(dataDeleteCmd)

	dataDeleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation")
}

func runDataExport(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	data, err := a.local.Export(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Data exported to %s\n", args[0])
	return nil
}

func runDataImport(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	written, err := a.local.Import(cmd.Context(), data)
	if errors.Is(err, storage.ErrInvalidFormat) {
		return fmt.Errorf("%s is not a HomeNet export", args[0])
	}
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	fmt.Printf("✓ Imported %s\n", strings.Join(written, ", "))
	return nil
}

func runDataDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	if !yesFlag && !confirm("This permanently deletes all locations, devices, alerts and settings. Continue?") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.client.DeleteUserData(ctx); err != nil {
		return describeError("failed to delete data", err)
	}
	if err := a.local.Clear(ctx); err != nil {
		return fmt.Errorf("backend data deleted but local data could not be cleared: %w", err)
	}

	fmt.Println("✓ All data deleted")
	return nil
}
