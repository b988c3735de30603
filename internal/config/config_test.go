package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	// Run from an empty directory so no stray .env is picked up.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{
		"CTT_TIMEZONE", "CTT_HORIZON_MINUTES", "CTT_LOG_LEVEL", "CTT_LOG_FORMAT",
		"CTT_SERVER_ADDR", "CTT_SESSION_TTL_MINUTES", "CTT_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("first-run config = %+v, want defaults", cfg)
	}

	path := filepath.Join(home, ".ctt", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config template at %s: %v", path, err)
	}

	// The written template must parse back to the defaults.
	again, err := Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(again, Default()) {
		t.Errorf("template parses to %+v, want defaults", again)
	}
}

func TestParsePartialFileKeepsDefaults(t *testing.T) {
	data := []byte(`// comment
{
  // another comment
  "timezone": "Europe/Berlin",
  "server": {"addr": ":9090"}
}`)
	cfg, err := parse(data, "test.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.HorizonMinutes != DefaultHorizonMinutes {
		t.Errorf("HorizonMinutes = %d, want default", cfg.HorizonMinutes)
	}
	if cfg.Server.SessionTTLMinutes != DefaultSessionTTL {
		t.Errorf("SessionTTLMinutes = %d, want default", cfg.Server.SessionTTLMinutes)
	}
	if cfg.Outlook.ClientID != DefaultClientID {
		t.Errorf("ClientID = %q, want default", cfg.Outlook.ClientID)
	}
}

func TestParseError(t *testing.T) {
	if _, err := parse([]byte("invalid json { content"), "bad.json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CTT_TIMEZONE", "UTC")
	t.Setenv("CTT_HORIZON_MINUTES", "30")
	t.Setenv("CTT_LOG_FORMAT", "json")
	t.Setenv("CTT_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CTT_SESSION_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.Horizon() != 30*time.Minute {
		t.Errorf("Horizon = %v, want 30m", cfg.Horizon())
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %q, want %q", cfg.Server.AllowedOrigins, want)
	}
	if cfg.SessionTTL() != DefaultSessionTTL*time.Minute {
		t.Errorf("SessionTTL = %v, want default for unparsable value", cfg.SessionTTL())
	}
}

func TestEnvNonPositiveKeepsDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("CTT_HORIZON_MINUTES", "0")
	t.Setenv("CTT_SESSION_TTL_MINUTES", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HorizonMinutes != DefaultHorizonMinutes {
		t.Errorf("HorizonMinutes = %d, want default", cfg.HorizonMinutes)
	}
	if cfg.Server.SessionTTLMinutes != DefaultSessionTTL {
		t.Errorf("SessionTTLMinutes = %d, want default", cfg.Server.SessionTTLMinutes)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "UTC"
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location = %v, %v", loc, err)
	}
	cfg.Timezone = "Mars/Olympus"
	if _, err := cfg.Location(); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
