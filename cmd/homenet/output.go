package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/api"
	"github.com/sguter90/homenet/pkg/storage"
	"github.com/sguter90/homenet/pkg/weather"
	"golang.org/x/term"
)

const bannerWidth = 60

var stdin = bufio.NewReader(os.Stdin)

func printHeader(title string) {
	fmt.Println("\n" + strings.Repeat("=", bannerWidth))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", bannerWidth))
}

func printFooter() {
	fmt.Println(strings.Repeat("=", bannerWidth) + "\n")
}

// prompt reads one trimmed line
func prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echo when stdin is a terminal
func readPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return prompt(label)
	}

	fmt.Print(label)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}

// confirm asks a yes/no question
func confirm(question string) bool {
	answer, err := prompt(fmt.Sprintf("\n⚠️  %s (yes/no): ", question))
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y"
}

// displayUnits returns the local display preferences
func displayUnits(ctx context.Context, local *storage.Local) (weather.TemperatureUnit, weather.WindSpeedUnit) {
	tempUnit, err := local.TemperatureUnit(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read temperature unit")
		tempUnit = weather.Fahrenheit
	}
	windUnit, err := local.WindSpeedUnit(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read wind speed unit")
		windUnit = weather.MPH
	}
	return tempUnit, windUnit
}

// describeError surfaces the backend's message when there is one
func describeError(action string, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("%s: not logged in", action)
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", action, apiErr.Message())
	}
	return fmt.Errorf("%s: %w", action, err)
}
