package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUnhealthy is returned by EnsureConnection after a failed health check
var ErrUnhealthy = errors.New("database connection is not healthy")

// HealthChecker monitors and maintains database connection health
type HealthChecker struct {
	db            *sql.DB
	connect       func() (*sql.DB, error)
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	ticker        *time.Ticker
	mu            sync.RWMutex
	isHealthy     bool
}

// NewHealthChecker creates a new health checker. connect is used to
// re-establish the connection after a failed ping and may be nil.
func NewHealthChecker(db *sql.DB, connect func() (*sql.DB, error), checkInterval time.Duration) *HealthChecker {
	return &HealthChecker{
		db:            db,
		connect:       connect,
		checkInterval: checkInterval,
		stopChan:      make(chan struct{}),
		isHealthy:     true,
	}
}

// Start begins monitoring the database connection
func (chc *HealthChecker) Start() {
	ticker := time.NewTicker(chc.checkInterval)
	chc.mu.Lock()
	chc.ticker = ticker
	chc.mu.Unlock()

	go func() {
		for {
			select {
			case <-chc.stopChan:
				ticker.Stop()
				return
			case <-ticker.C:
				chc.checkConnection()
			}
		}
	}()
}

// Stop stops monitoring the database connection. It is safe to call more than once.
func (chc *HealthChecker) Stop() {
	chc.stopOnce.Do(func() {
		close(chc.stopChan)
	})
}

// DB returns the current connection, which changes after a reconnect
func (chc *HealthChecker) DB() *sql.DB {
	chc.mu.RLock()
	defer chc.mu.RUnlock()
	return chc.db
}

// checkConnection performs a health check on the database connection
func (chc *HealthChecker) checkConnection() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := chc.DB().PingContext(ctx)

	chc.mu.Lock()
	defer chc.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Database connection health check failed")
		chc.isHealthy = false

		if err := chc.reconnect(); err != nil {
			log.Error().Err(err).Msg("Failed to reconnect to database")
			return
		}
		chc.isHealthy = true
		return
	}

	if !chc.isHealthy {
		log.Info().Msg("Database connection restored")
	}
	chc.isHealthy = true
}

// reconnect attempts to re-establish the database connection. Callers hold mu.
func (chc *HealthChecker) reconnect() error {
	if chc.connect == nil {
		return errors.New("no reconnect function configured")
	}

	newDB, err := chc.connect()
	if err != nil {
		return err
	}

	if chc.db != nil {
		_ = chc.db.Close()
	}
	chc.db = newDB
	log.Info().Msg("Database connection re-established")
	return nil
}

// restore reconnects an unhealthy connection and returns the new handle
func (chc *HealthChecker) restore() (*sql.DB, error) {
	chc.mu.Lock()
	defer chc.mu.Unlock()

	if chc.isHealthy {
		return chc.db, nil
	}
	if err := chc.reconnect(); err != nil {
		log.Error().Err(err).Msg("Failed to reconnect to database")
		return nil, err
	}
	chc.isHealthy = true
	return chc.db, nil
}

// IsHealthy returns the current health status of the connection
func (chc *HealthChecker) IsHealthy() bool {
	chc.mu.RLock()
	defer chc.mu.RUnlock()
	return chc.isHealthy
}

// EnsureConnection ensures the connection is healthy before executing a query.
// Without background monitoring an unhealthy connection is re-established here.
func (chc *HealthChecker) EnsureConnection(ctx context.Context) error {
	chc.mu.RLock()
	isHealthy := chc.isHealthy
	monitored := chc.ticker != nil
	db := chc.db
	chc.mu.RUnlock()

	if !isHealthy {
		if monitored {
			return ErrUnhealthy
		}
		var err error
		if db, err = chc.restore(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnhealthy, err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		chc.mu.Lock()
		chc.isHealthy = false
		chc.mu.Unlock()
		return fmt.Errorf("database connection check failed: %w", err)
	}

	return nil
}
