package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestNewHealthChecker(t *testing.T) {
	db := &sql.DB{}
	interval := 5 * time.Second

	hc := NewHealthChecker(db, nil, interval)

	if hc.DB() != db {
		t.Error("Expected db to be set correctly")
	}
	if hc.checkInterval != interval {
		t.Errorf("Expected checkInterval=%v, got %v", interval, hc.checkInterval)
	}
	if !hc.IsHealthy() {
		t.Error("Expected initial health status to be true")
	}
}

func TestEnsureConnection_Unhealthy(t *testing.T) {
	hc := NewHealthChecker(&sql.DB{}, nil, 5*time.Second)

	hc.mu.Lock()
	hc.isHealthy = false
	hc.mu.Unlock()

	err := hc.EnsureConnection(context.Background())
	if !errors.Is(err, ErrUnhealthy) {
		t.Errorf("Expected ErrUnhealthy, got: %v", err)
	}
}

func TestStop_Twice(t *testing.T) {
	hc := NewHealthChecker(&sql.DB{}, nil, 5*time.Second)

	hc.Stop()
	hc.Stop()

	select {
	case <-hc.stopChan:
	case <-time.After(100 * time.Millisecond):
		t.Error("Expected stopChan to be closed after Stop()")
	}
}

func TestCheckConnectionReconnects(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "health.db")
	db, err := connectDatabase(DialectSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	reconnects := 0
	connect := func() (*sql.DB, error) {
		reconnects++
		return connectDatabase(DialectSQLite, dsn)
	}
	hc := NewHealthChecker(db, connect, time.Hour)
	defer func() { _ = hc.DB().Close() }()

	// a closed handle fails its ping
	_ = db.Close()
	hc.checkConnection()

	if reconnects != 1 {
		t.Errorf("Expected one reconnect, got %d", reconnects)
	}
	if !hc.IsHealthy() {
		t.Error("Expected connection to be healthy after reconnect")
	}
	if hc.DB() == db {
		t.Error("Expected a new connection handle")
	}
	if err := hc.EnsureConnection(context.Background()); err != nil {
		t.Errorf("Expected no error after reconnect, got: %v", err)
	}
}

func TestHealthChecker_ConcurrentAccess(t *testing.T) {
	hc := NewHealthChecker(&sql.DB{}, nil, 5*time.Second)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = hc.IsHealthy()
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		go func(val bool) {
			for j := 0; j < 100; j++ {
				hc.mu.Lock()
				hc.isHealthy = val
				hc.mu.Unlock()
			}
			done <- true
		}(i%2 == 0)
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}

func TestEnsureConnection_ReconnectsWithoutMonitoring(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "unmonitored.db")
	db, err := connectDatabase(DialectSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	connect := func() (*sql.DB, error) {
		return connectDatabase(DialectSQLite, dsn)
	}
	hc := NewHealthChecker(db, connect, 0)
	defer func() { _ = hc.DB().Close() }()

	_ = db.Close()
	if err := hc.EnsureConnection(context.Background()); err == nil {
		t.Fatal("Expected ping failure on a closed handle")
	}
	if hc.IsHealthy() {
		t.Fatal("Expected connection to be marked unhealthy")
	}

	if err := hc.EnsureConnection(context.Background()); err != nil {
		t.Fatalf("Expected reconnect on next use, got: %v", err)
	}
	if !hc.IsHealthy() {
		t.Error("Expected connection to be healthy after reconnect")
	}
	if hc.DB() == db {
		t.Error("Expected a new connection handle")
	}
}
