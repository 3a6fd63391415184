package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/devserver"
	"github.com/spf13/cobra"
)

const insecureSecret = "change_me_in_production"

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a local HomeNet backend",
	Long: `Start an in-memory HomeNet backend for development. It implements the
REST API the client talks to, with generated weather data.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (default HOMENET_DEVSERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	secret := a.cfg.JWTSecret
	if secret == insecureSecret {
		return errors.New("HOMENET_JWT_SECRET has an invalid value")
	}
	if secret == "" {
		secret = uuid.New().String()
		log.Warn().Msg("HOMENET_JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
	}

	srv, err := devserver.New(devserver.Config{JWTSecret: secret})
	if err != nil {
		return err
	}

	addr := addrFlag
	if addr == "" {
		addr = a.cfg.DevServerAddr
	}

	server := &http.Server{
		Handler:      srv,
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-cmd.Context().Done()
		log.Info().Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	log.Info().Str("addr", addr).Str("version", devserver.Version).Msg("Starting HomeNet dev server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
