package database

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) *MigrationsRunner {
	t.Helper()
	db, err := connectDatabase(DialectSQLite, filepath.Join(t.TempDir(), "migrations.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	runner, err := NewMigrationsRunner(db, DialectSQLite)
	if err != nil {
		t.Fatalf("Expected NewMigrationsRunner to succeed: %v", err)
	}
	runner.DisableLogging()
	return runner
}

func TestLoadMigrations(t *testing.T) {
	runner := openTestSQLite(t)

	if len(runner.Migrations()) == 0 {
		t.Fatal("Expected at least one migration to be loaded")
	}

	for i := 1; i < len(runner.migrations); i++ {
		if runner.migrations[i-1].Version >= runner.migrations[i].Version {
			t.Errorf("Expected migrations to be sorted by version, but %d >= %d",
				runner.migrations[i-1].Version, runner.migrations[i].Version)
		}
	}

	for _, migration := range runner.migrations {
		if migration.Version == 0 {
			t.Error("Expected migration version to be non-zero")
		}
		if migration.Name == "" {
			t.Error("Expected migration name to be non-empty")
		}
		if migration.SQL == "" {
			t.Error("Expected migration SQL to be non-empty")
		}
	}

	if runner.migrations[0].Name != "create_kv_store" {
		t.Errorf("Expected first migration create_kv_store, got %s", runner.migrations[0].Name)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	runner := openTestSQLite(t)

	if err := runner.Run(ctx); err != nil {
		t.Fatalf("Expected first Run to succeed: %v", err)
	}
	if err := runner.Run(ctx); err != nil {
		t.Fatalf("Expected second Run to succeed: %v", err)
	}

	applied, err := runner.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("Expected getAppliedMigrations to succeed: %v", err)
	}
	if len(applied) != len(runner.migrations) {
		t.Errorf("Expected %d applied migrations, got %d", len(runner.migrations), len(applied))
	}

	var count int
	if err := runner.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&count); err != nil {
		t.Fatalf("Expected kv_store table to exist: %v", err)
	}
}

func TestRebind(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "Postgres unchanged",
			dialect: DialectPostgres,
			query:   "SELECT 1 WHERE a = $1 AND b = $2",
			want:    "SELECT 1 WHERE a = $1 AND b = $2",
		},
		{
			name:    "SQLite question marks",
			dialect: DialectSQLite,
			query:   "INSERT INTO t (a, b) VALUES ($1, $12)",
			want:    "INSERT INTO t (a, b) VALUES (?, ?)",
		},
		{
			name:    "Bare dollar kept",
			dialect: DialectSQLite,
			query:   "SELECT '$' WHERE a = $1",
			want:    "SELECT '$' WHERE a = ?",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dialect.rebind(tc.query); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseDialect(t *testing.T) {
	for _, in := range []string{"sqlite", "SQLite"} {
		if d, err := ParseDialect(in); err != nil || d != DialectSQLite {
			t.Errorf("ParseDialect(%q): expected sqlite, got %v %v", in, d, err)
		}
	}
	if d, err := ParseDialect("postgresql"); err != nil || d != DialectPostgres {
		t.Errorf("Expected postgres, got %v %v", d, err)
	}
	if _, err := ParseDialect("mysql"); err == nil {
		t.Error("Expected error for mysql")
	}
}
