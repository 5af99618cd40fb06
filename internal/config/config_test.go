package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Upstream.URL != scraper.DefaultBulletinURL {
		t.Errorf("upstream url = %q, want %q", cfg.Upstream.URL, scraper.DefaultBulletinURL)
	}
	if cfg.Server.FetchTimeout <= cfg.Upstream.Timeout {
		t.Error("server fetch timeout should exceed the upstream timeout")
	}
	if cfg.Notify.Channel != "dryrun" {
		t.Errorf("notify channel = %q, want dryrun", cfg.Notify.Channel)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg != Default() {
		t.Errorf("config from empty file = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  log_level: debug
  fetch_timeout: 10s
upstream:
  url: "http://localhost:8000/kyuko"
  requests_per_sec: 0.5
watch:
  interval: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Server.FetchTimeout != 10*time.Second {
		t.Errorf("fetch timeout = %v, want 10s", cfg.Server.FetchTimeout)
	}
	if cfg.Upstream.URL != "http://localhost:8000/kyuko" {
		t.Errorf("upstream url = %q", cfg.Upstream.URL)
	}
	if cfg.Upstream.RequestsPerSec != 0.5 {
		t.Errorf("requests per sec = %v, want 0.5", cfg.Upstream.RequestsPerSec)
	}
	if cfg.Watch.Interval != 5*time.Minute {
		t.Errorf("watch interval = %v, want 5m", cfg.Watch.Interval)
	}

	// Untouched keys keep their defaults.
	if cfg.Upstream.UserAgent != scraper.DefaultUserAgent {
		t.Errorf("user agent = %q, want default", cfg.Upstream.UserAgent)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KYUKO_UPSTREAM_URL", "http://localhost:8001/kyuko")
	t.Setenv("KYUKO_SERVER_ADDR", ":7070")
	t.Setenv("KYUKO_WATCH_INTERVAL", "90s")

	path := writeConfig(t, `
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Upstream.URL != "http://localhost:8001/kyuko" {
		t.Errorf("upstream url = %q, want env value", cfg.Upstream.URL)
	}
	// Environment wins over the file.
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.Watch.Interval != 90*time.Second {
		t.Errorf("watch interval = %v, want 90s", cfg.Watch.Interval)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}
