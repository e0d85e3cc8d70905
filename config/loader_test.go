package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
server:
  port: 9000
upstream:
  baseURL: "http://functions.local"
  timeoutMS: 5000
routing:
  defaultProvider: tripgo
  providers:
    - name: tripgo
      target: routing-tripgo
      regions:
        - name: south
          suffix: southfinland
          minLat: 59.7
          minLon: 19.0
          maxLat: 62.0
          maxLon: 32.0
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Routing.DefaultProvider != "tripgo" {
		t.Errorf("expected default provider tripgo, got %s", cfg.Routing.DefaultProvider)
	}
	p, ok := cfg.Provider("tripgo")
	if !ok || len(p.Regions) != 1 || p.Regions[0].Suffix != "southfinland" {
		t.Errorf("provider table not loaded: %+v", p)
	}
	// Unset sections keep their defaults.
	if cfg.Cache.TTLSeconds != 30 {
		t.Errorf("expected default cache TTL, got %d", cfg.Cache.TTLSeconds)
	}
}

func TestLoadAppConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
	if _, ok := cfg.Provider("tripgo"); !ok {
		t.Error("default provider table must include tripgo")
	}
}

func TestLoadAppConfigRejectsBadUpstreamURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("upstream:\n  baseURL: \"not a url\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected validation error for bad baseURL")
	}
}

func TestDefaultTableCoversAllProviders(t *testing.T) {
	cfg := Default()
	for _, name := range []string{"digitransit", "hsl", "matka", "tripgo", "here"} {
		if _, ok := cfg.Provider(name); !ok {
			t.Errorf("default table is missing %s", name)
		}
	}
	tripgo, _ := cfg.Provider("tripgo")
	if len(tripgo.Regions) != 3 {
		t.Errorf("tripgo must be partitioned into three regions, got %d", len(tripgo.Regions))
	}
}
