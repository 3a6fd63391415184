package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sguter90/homenet/internal/config"
	"github.com/spf13/cobra"
)

var (
	apiURLFlag string
	storeFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "homenet",
	Short: "HomeNet - Smart Home and Weather Client",
	Long: `HomeNet combines weather monitoring for saved locations with smart-home
device control, weather alerts and an AI assistant.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend base URL (overrides HOMENET_API_URL)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "local store: file, memory, sqlite or postgres (overrides HOMENET_STORE)")
}

// setupApp loads configuration and wires the app into the command context
func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
		if os.Getenv(config.EnvPrefix+"_STORE_PATH") == "" {
			cfg.StorePath = ""
		}
		if err := cfg.ResolveDefaults(); err != nil {
			return err
		}
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	config.SetLogLevel(level)

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	cmd.SetContext(withApp(cmd.Context(), a))
	return nil
}

func teardownApp(cmd *cobra.Command, args []string) error {
	if a := appFrom(cmd); a != nil {
		return a.Close()
	}
	return nil
}

func main() {
	config.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
