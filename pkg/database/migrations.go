package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationsRunner handles database migrations
type MigrationsRunner struct {
	db         *sql.DB
	dialect    Dialect
	logger     zerolog.Logger
	migrations []Migration
}

// NewMigrationsRunner creates a new migration runner
func NewMigrationsRunner(db *sql.DB, dialect Dialect) (*MigrationsRunner, error) {
	runner := &MigrationsRunner{
		db:         db,
		dialect:    dialect,
		logger:     log.Logger.With().Str("component", "migrations").Logger(),
		migrations: []Migration{},
	}

	if err := runner.loadMigrations(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return runner, nil
}

// DisableLogging silences migration progress output
func (r *MigrationsRunner) DisableLogging() {
	r.logger = zerolog.Nop()
}

// EnableLogging restores migration progress output
func (r *MigrationsRunner) EnableLogging() {
	r.logger = log.Logger.With().Str("component", "migrations").Logger()
}

// Migrations returns the loaded migrations sorted by version
func (r *MigrationsRunner) Migrations() []Migration {
	return r.migrations
}

// loadMigrations loads all .up.sql migration files from the embedded filesystem
func (r *MigrationsRunner) loadMigrations() error {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		if !strings.HasSuffix(filename, ".up.sql") {
			continue
		}

		// 000001_name.up.sql
		parts := strings.SplitN(filename, "_", 2)
		if len(parts) < 2 {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(parts[0], "%d", &version); err != nil {
			r.logger.Warn().Str("file", filename).Msg("Skipping invalid migration file")
			continue
		}

		content, err := migrationFiles.ReadFile("sql/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		r.migrations = append(r.migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".up.sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(r.migrations, func(i, j int) bool {
		return r.migrations[i].Version < r.migrations[j].Version
	})

	return nil
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (r *MigrationsRunner) createMigrationsTable(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version INTEGER PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )
    `
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// getAppliedMigrations returns a set of applied migration versions
func (r *MigrationsRunner) getAppliedMigrations(ctx context.Context) (map[int]bool, error) {
	applied := make(map[int]bool)

	rows, err := r.db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// Run executes all pending migrations, each in its own transaction
func (r *MigrationsRunner) Run(ctx context.Context) error {
	if err := r.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := r.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	pendingCount := 0
	for _, migration := range r.migrations {
		if !applied[migration.Version] {
			pendingCount++
		}
	}

	if pendingCount == 0 {
		r.logger.Debug().Msg("No pending migrations")
		return nil
	}

	r.logger.Info().Int("pending", pendingCount).Msg("Found pending migrations")

	for _, migration := range r.migrations {
		if applied[migration.Version] {
			continue
		}

		r.logger.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.ExecContext(ctx,
			r.dialect.rebind("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)"),
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	r.logger.Info().Int("applied", pendingCount).Msg("All migrations completed successfully")
	return nil
}
