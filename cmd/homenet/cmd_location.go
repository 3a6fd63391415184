package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/spf13/cobra"
)

var pickFlag int

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage saved locations",
	Long:  `Search cities and add, list or delete the locations shown on the dashboard.`,
}

var locationSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cities by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationSearch,
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved locations",
	Args:  cobra.NoArgs,
	RunE:  runLocationList,
}

var locationAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Search a city and save it",
	Long: `Search cities matching the query and save one of them. Use --pick to
choose a result without prompting.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocationAdd,
}

var locationDeleteCmd = &cobra.Command{
	Use:   "delete <locationId>",
	Short: "Delete a saved location",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationDelete,
}

func init() {
	rootCmd.AddCommand(locationCmd)
	locationCmd.AddCommand(locationSearchCmd)
	locationCmd.AddCommand(locationListCmd)
	locationCmd.AddCommand(locationAddCmd)
	locationCmd.AddCommand(locationDeleteCmd)

	locationAddCmd.Flags().IntVar(&pickFlag, "pick", 0, "1-based index of the search result to save")
}

func printCities(cities []models.City) {
	for i, c := range cities {
		fmt.Printf("[%d] %s, %s (%.4f, %.4f) %s\n", i+1, c.Name, c.Country, c.Lat, c.Lon, c.Timezone)
	}
}

func runLocationSearch(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	cities, err := a.client.SearchLocations(cmd.Context(), args[0])
	if err != nil {
		return describeError("search failed", err)
	}
	if len(cities) == 0 {
		fmt.Println("No cities found.")
		return nil
	}

	printHeader(fmt.Sprintf("Cities matching %q", args[0]))
	printCities(cities)
	printFooter()
	return nil
}

func runLocationList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	locations, err := a.client.ListLocations(cmd.Context())
	if err != nil {
		return describeError("failed to list locations", err)
	}
	if len(locations) == 0 {
		fmt.Println("No locations saved yet. Add one with: homenet location add <city>")
		return nil
	}

	printHeader("Saved Locations")
	for _, l := range locations {
		fmt.Printf("[%s] %s, %s (%.4f, %.4f) %s\n", l.ID, l.Name, l.Country, l.Latitude, l.Longitude, l.Timezone)
	}
	printFooter()
	return nil
}

func runLocationAdd(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()

	cities, err := a.client.SearchLocations(ctx, args[0])
	if err != nil {
		return describeError("search failed", err)
	}
	if len(cities) == 0 {
		fmt.Println("No cities found.")
		return nil
	}

	selection := pickFlag
	if selection == 0 {
		if len(cities) == 1 {
			selection = 1
		} else {
			printHeader("Select City")
			printCities(cities)
			input, err := prompt("\nEnter city number (0 to cancel): ")
			if err != nil {
				return err
			}
			if selection, err = strconv.Atoi(input); err != nil {
				fmt.Println("Invalid selection.")
				return nil
			}
		}
	}
	if selection == 0 {
		fmt.Println("Cancelled.")
		return nil
	}
	if selection < 0 || selection > len(cities) {
		return errors.New("invalid selection")
	}

	city := cities[selection-1]
	loc, err := a.client.AddLocation(ctx, models.LocationCreate{
		Name:      city.Name,
		Country:   city.Country,
		Latitude:  city.Lat,
		Longitude: city.Lon,
		Timezone:  city.Timezone,
	})
	if err != nil {
		return describeError("failed to add location", err)
	}

	fmt.Printf("\n✓ Location '%s, %s' saved with ID: %s\n", loc.Name, loc.Country, loc.ID)
	return nil
}

func runLocationDelete(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	ctx := cmd.Context()
	id := models.ID(args[0])

	if err := a.client.DeleteLocation(ctx, id); err != nil {
		return describeError("failed to delete location", err)
	}

	// Keep the dashboard cache in line with the backend
	cached, err := a.local.Locations(ctx)
	if err == nil {
		kept := cached[:0]
		for _, l := range cached {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		err = a.local.SetLocations(ctx, kept)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to update cached locations")
	}

	fmt.Printf("✓ Location %s deleted\n", id)
	return nil
}
