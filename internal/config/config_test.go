package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("default port = %q, want 8081", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.LedgerCacheTTL != 5*time.Minute {
		t.Errorf("default ledger cache TTL = %v, want 5m", cfg.LedgerCacheTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("LEDGER_CACHE_TTL", "30s")

	cfg := Load()
	if cfg.Port != "9090" || cfg.StoreBackend != "sqlite" || cfg.LedgerCacheTTL != 30*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "must be between"},
		{"bad backend", func(c *Config) { c.StoreBackend = "mongo" }, "invalid store backend"},
		{"firestore needs project", func(c *Config) { c.StoreBackend = "firestore" }, "FIRESTORE_PROJECT_ID"},
		{"amqp needs exchange", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPExchange = "" }, "AMQP_EXCHANGE"},
		{"cache size", func(c *Config) { c.UserCacheSize = 0 }, "user cache size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}
