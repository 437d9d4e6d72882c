package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("default store backend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.ModelName != "gemini-2.5-flash" {
		t.Errorf("default model = %q", cfg.ModelName)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("default worker count = %d, want 5", cfg.WorkerCount)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.StoreBackend != "firestore" {
		t.Errorf("store backend = %q, want firestore", cfg.StoreBackend)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout = %s, want 30s", cfg.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = "not-a-port" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.StoreBackend = "postgres" },
			wantErr: true,
		},
		{
			name:    "firestore without project",
			mutate:  func(c *Config) { c.StoreBackend = "firestore"; c.ProjectID = "" },
			wantErr: true,
		},
		{
			name:   "firestore with project",
			mutate: func(c *Config) { c.StoreBackend = "firestore"; c.ProjectID = "p" },
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.WorkerCount = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
