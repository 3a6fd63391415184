package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sguter90/homenet/internal/config"
	"github.com/sguter90/homenet/pkg/devserver"
	"github.com/sguter90/homenet/pkg/models"
)

func TestRules_AddEnableDelete(t *testing.T) {
	rules, rule, err := addRule(nil, "Close blinds", "temperature > 85", "close", []string{"3"})
	if err != nil {
		t.Fatalf("addRule: %v", err)
	}
	if len(rules) != 1 || rule.ID == "" || !rule.Enabled {
		t.Fatalf("unexpected rule: %+v", rules)
	}

	rules, second, err := addRule(rules, "Lights", "sunset", "on", nil)
	if err != nil {
		t.Fatalf("addRule: %v", err)
	}
	if second.ID == rule.ID {
		t.Error("expected distinct rule ids")
	}
	if second.Devices == nil {
		t.Error("expected empty device list, got nil")
	}

	disabled, err := setRuleEnabled(rules, rule.ID, false)
	if err != nil {
		t.Fatalf("setRuleEnabled: %v", err)
	}
	if disabled[0].Enabled {
		t.Error("rule should be disabled")
	}
	if !rules[0].Enabled {
		t.Error("input slice must not be modified")
	}

	remaining, err := deleteRule(disabled, rule.ID)
	if err != nil {
		t.Fatalf("deleteRule: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Errorf("unexpected rules after delete: %+v", remaining)
	}
}

func TestRules_Errors(t *testing.T) {
	existing := []models.AutomationRule{{ID: "a", Name: "A", Trigger: "t", Action: "x", Enabled: true}}

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"empty name", func() error {
			_, _, err := addRule(existing, "  ", "t", "a", nil)
			return err
		}, nil},
		{"missing action", func() error {
			_, _, err := addRule(existing, "n", "t", "", nil)
			return err
		}, nil},
		{"enable unknown", func() error {
			_, err := setRuleEnabled(existing, "missing", true)
			return err
		}, errRuleNotFound},
		{"delete unknown", func() error {
			_, err := deleteRule(existing, "missing")
			return err
		}, errRuleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInspectToken(t *testing.T) {
	user := models.User{ID: "u-1", Username: "alice"}
	token, expires, err := devserver.GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	info, err := inspectToken(token)
	if err != nil {
		t.Fatalf("inspectToken: %v", err)
	}
	if info.Subject != "u-1" {
		t.Errorf("subject: expected u-1, got %q", info.Subject)
	}
	if info.Username != "alice" {
		t.Errorf("username: expected alice, got %q", info.Username)
	}
	if !info.ExpiresAt.Equal(expires.Truncate(time.Second)) {
		t.Errorf("expiry: expected %v, got %v", expires, info.ExpiresAt)
	}

	if _, err := inspectToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory", config.Config{Store: config.StoreMemory}, false},
		{"file", config.Config{Store: config.StoreFile, StorePath: filepath.Join(dir, "state.json")}, false},
		{"sqlite", config.Config{Store: config.StoreSQLite, StorePath: filepath.Join(dir, "state.db")}, false},
		{"unknown", config.Config{Store: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := tt.cfg

			store, closeStore, err := openStore(ctx, &cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer closeStore()

			if err := store.Set(ctx, "k", "v"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := store.Get(ctx, "k")
			if err != nil || !ok || got != "v" {
				t.Errorf("Get: expected v, got %q (ok=%v, err=%v)", got, ok, err)
			}
		})
	}
}
