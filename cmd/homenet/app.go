package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/internal/config"
	"github.com/sguter90/homenet/pkg/api"
	"github.com/sguter90/homenet/pkg/database"
	"github.com/sguter90/homenet/pkg/storage"
	"github.com/spf13/cobra"
)

// postgresHealthInterval is how often a postgres-backed store is pinged
const postgresHealthInterval = 30 * time.Second

// app bundles the wired dependencies shared by all commands
type app struct {
	cfg        *config.Config
	local      *storage.Local
	client     *api.Client
	closeStore func() error
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(cmd *cobra.Command) *app {
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	local := storage.NewLocal(store)

	client := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithTokenStore(local),
		api.WithDebugLogging(cfg.Debug),
		api.WithOnUnauthorized(func() {
			if err := local.ClearSession(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Failed to clear session")
			}
			fmt.Fprintln(os.Stderr, "Session expired or invalid. Please log in again: homenet login")
		}),
	)

	return &app{cfg: cfg, local: local, client: client, closeStore: closeStore}, nil
}

// Close releases the local store
func (a *app) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

// openStore opens the configured key-value backend for local persistence
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), noop, nil

	case config.StoreFile:
		fs, err := storage.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.StoreSQLite:
		s, err := database.NewSQLStore(ctx, database.DialectSQLite, cfg.StorePath, database.Options{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, s.Close, nil

	case config.StorePostgres:
		s, err := database.NewSQLStore(ctx, database.DialectPostgres, cfg.DatabaseURL, database.Options{
			HealthCheckInterval: postgresHealthInterval,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store: %s", cfg.Store)
}
