package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "aegis.yaml", `
base_url: https://aegis.example.com
timeout: 45s
user_agent: custom-agent/1.0

cache:
  mode: memory
  capacity: 64

breaker:
  enabled: true
  max_failures: 3
  open_timeout: 10s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://aegis.example.com" {
		t.Errorf("unexpected base_url: %q", cfg.BaseURL)
	}
	if cfg.GetTimeout() != 45*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.GetTimeout())
	}
	if cfg.UserAgent != "custom-agent/1.0" {
		t.Errorf("unexpected user_agent: %q", cfg.UserAgent)
	}
	if cfg.Cache == nil || cfg.Cache.Mode != CacheModeMemory || cfg.Cache.Capacity != 64 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Breaker == nil || !cfg.Breaker.Enabled || cfg.Breaker.MaxFailures != 3 {
		t.Errorf("unexpected breaker config: %+v", cfg.Breaker)
	}
	if cfg.Breaker.GetOpenTimeout() != 10*time.Second {
		t.Errorf("unexpected open timeout: %v", cfg.Breaker.GetOpenTimeout())
	}
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "aegis.yaml", "base_url: http://localhost:8000\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetTimeout() != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.GetTimeout())
	}
	if cfg.Cache != nil || cfg.Breaker != nil {
		t.Error("expected optional sections to stay nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "aegis.yaml", "base_url: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing base_url",
			cfg:     Config{},
			wantErr: "base_url is required",
		},
		{
			name:    "bad timeout",
			cfg:     Config{BaseURL: "http://x", Timeout: "fast"},
			wantErr: "invalid timeout",
		},
		{
			name: "bad cache mode",
			cfg: Config{
				BaseURL: "http://x",
				Cache:   &CacheConfig{Mode: "disk"},
			},
			wantErr: "invalid cache mode",
		},
		{
			name: "redis mode without url",
			cfg: Config{
				BaseURL: "http://x",
				Cache:   &CacheConfig{Mode: CacheModeRedis},
			},
			wantErr: "requires redis_url",
		},
		{
			name: "negative capacity",
			cfg: Config{
				BaseURL: "http://x",
				Cache:   &CacheConfig{Mode: CacheModeMemory, Capacity: -1},
			},
			wantErr: "capacity cannot be negative",
		},
		{
			name: "bad cache ttl",
			cfg: Config{
				BaseURL: "http://x",
				Cache:   &CacheConfig{Mode: CacheModeMemory, TTL: "daily"},
			},
			wantErr: "invalid cache ttl",
		},
		{
			name: "bad breaker timeout",
			cfg: Config{
				BaseURL: "http://x",
				Breaker: &BreakerConfig{Enabled: true, OpenTimeout: "soon"},
			},
			wantErr: "invalid breaker open_timeout",
		},
		{
			name: "valid with redis cache",
			cfg: Config{
				BaseURL: "http://x",
				Cache: &CacheConfig{
					Mode:     CacheModeRedis,
					RedisURL: "redis://localhost:6379/0",
					TTL:      "24h",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "aegis.yaml", "base_url: http://localhost:8000\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}

	path, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(root, "aegis.yaml") {
		t.Errorf("expected config at repo root, got %q", path)
	}
}

func TestFind_PrefersNearest(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "aegis.yaml", "base_url: http://outer\n")

	inner := filepath.Join(root, "sub")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	want := writeConfig(t, inner, "aegis.yml", "base_url: http://inner\n")

	path, err := Find(inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != want {
		t.Errorf("expected nearest config %q, got %q", want, path)
	}
}

func TestFind_NotFound(t *testing.T) {
	if _, err := Find(t.TempDir()); err == nil {
		t.Skip("a config file exists above the temp dir on this machine")
	}
}

func TestDurationGetters_Defaults(t *testing.T) {
	var cache *CacheConfig
	if cache.GetCacheTTL() != 0 {
		t.Error("expected zero TTL for nil cache config")
	}

	var breaker *BreakerConfig
	if breaker.GetOpenTimeout() != 30*time.Second {
		t.Error("expected default open timeout for nil breaker config")
	}

	cfg := Config{Timeout: "not-a-duration"}
	if cfg.GetTimeout() != 30*time.Second {
		t.Error("expected default timeout for unparseable value")
	}
}
