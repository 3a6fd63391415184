// Package database provides a SQL-backed implementation of the client's
// key-value store, on sqlite or postgres.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore is a storage.Store persisted in the kv_store table
type SQLStore struct {
	dialect       Dialect
	healthChecker *HealthChecker
}

// Options tunes an SQLStore
type Options struct {
	// HealthCheckInterval is the ping period; zero disables background checks.
	HealthCheckInterval time.Duration
}

// NewSQLStore connects to the database, runs pending migrations and starts
// health checking.
func NewSQLStore(ctx context.Context, dialect Dialect, dsn string, opts Options) (*SQLStore, error) {
	db, err := connectDatabase(dialect, dsn)
	if err != nil {
		return nil, err
	}

	runner, err := NewMigrationsRunner(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migration runner: %w", err)
	}
	if err := runner.Run(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	connect := func() (*sql.DB, error) {
		return connectDatabase(dialect, dsn)
	}
	s := &SQLStore{
		dialect:       dialect,
		healthChecker: NewHealthChecker(db, connect, opts.HealthCheckInterval),
	}
	if opts.HealthCheckInterval > 0 {
		s.healthChecker.Start()
	}

	return s, nil
}

// DB returns the underlying database connection
func (s *SQLStore) DB() *sql.DB {
	return s.healthChecker.DB()
}

// IsConnectionHealthy returns the current health status
func (s *SQLStore) IsConnectionHealthy() bool {
	return s.healthChecker.IsHealthy()
}

// Close stops health checking and closes the connection
func (s *SQLStore) Close() error {
	s.healthChecker.Stop()
	if db := s.healthChecker.DB(); db != nil {
		return db.Close()
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.healthChecker.EnsureConnection(ctx); err != nil {
		return "", false, err
	}

	var value string
	err := s.DB().QueryRowContext(ctx,
		s.dialect.rebind("SELECT item_value FROM kv_store WHERE item_key = $1"), key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if err := s.healthChecker.EnsureConnection(ctx); err != nil {
		return err
	}

	query := `
        INSERT INTO kv_store (item_key, item_value, updated_at)
        VALUES ($1, $2, CURRENT_TIMESTAMP)
        ON CONFLICT (item_key) DO UPDATE
        SET item_value = excluded.item_value, updated_at = CURRENT_TIMESTAMP
    `
	if _, err := s.DB().ExecContext(ctx, s.dialect.rebind(query), key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if err := s.healthChecker.EnsureConnection(ctx); err != nil {
		return err
	}

	if _, err := s.DB().ExecContext(ctx, s.dialect.rebind("DELETE FROM kv_store WHERE item_key = $1"), key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	if err := s.healthChecker.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	rows, err := s.DB().QueryContext(ctx, "SELECT item_key FROM kv_store ORDER BY item_key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
