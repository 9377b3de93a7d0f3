package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 4617 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 4617)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("NUTRIQUEST_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Profile.WeightKg != 70 {
		t.Errorf("Profile.WeightKg = %v, want default 70", cfg.Profile.WeightKg)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	t.Setenv("NUTRIQUEST_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Profile.WeightKg = 82.5
	cfg.Profile.Goal = "LOSE"
	cfg.API.Port = 9900
	cfg.Telemetry.Prometheus = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded.Profile.WeightKg != 82.5 {
		t.Errorf("WeightKg = %v, want 82.5", loaded.Profile.WeightKg)
	}
	if loaded.Profile.Goal != "LOSE" {
		t.Errorf("Goal = %q, want LOSE", loaded.Profile.Goal)
	}
	if loaded.API.Port != 9900 {
		t.Errorf("Port = %d, want 9900", loaded.API.Port)
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("Telemetry.Prometheus = false, want true")
	}
}

func TestLoadConfigRejectsBadProfile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NUTRIQUEST_HOME", dir)

	raw := "[profile]\nweight_kg = 70\nheight_cm = 170\nage = 30\ngender = \"ROBOT\"\nactivity = 1.4\ngoal = \"MAINTAIN\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("load accepted unknown gender, want error")
	}
}

func TestDomainProfile(t *testing.T) {
	p := DefaultConfig().Profile.DomainProfile()
	if p.Gender != "MALE" || p.Goal != "MAINTAIN" {
		t.Errorf("profile = %+v", p)
	}
}
