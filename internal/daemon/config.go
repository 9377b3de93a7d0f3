// Package daemon manages the NutriQuest daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nutriquest-app/nutriquest/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	Profile   ProfileConfig   `toml:"profile"`
	API       APIConfig       `toml:"api"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ProfileConfig holds the body metrics behind the daily energy target.
type ProfileConfig struct {
	WeightKg float64 `toml:"weight_kg"`
	HeightCm float64 `toml:"height_cm"`
	Age      float64 `toml:"age"`
	Gender   string  `toml:"gender"`
	Activity float64 `toml:"activity"`
	Goal     string  `toml:"goal"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := nutriquestHome()
	return Config{
		Profile: ProfileConfig{
			WeightKg: 70,
			HeightCm: 170,
			Age:      30,
			Gender:   "MALE",
			Activity: 1.4,
			Goal:     "MAINTAIN",
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 4617,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "nutriquest.log"),
		},
	}
}

// LoadConfig reads config from ~/.nutriquest/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(nutriquestHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.nutriquest/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(nutriquestHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

func validate(cfg Config) error {
	p := cfg.Profile
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		return fmt.Errorf("profile: weight, height and age must be positive")
	}
	if p.Activity < 1.0 || p.Activity > 2.5 {
		return fmt.Errorf("profile: activity %.2f out of range [1.0, 2.5]", p.Activity)
	}
	switch domain.Gender(p.Gender) {
	case domain.GenderMale, domain.GenderFemale:
	default:
		return fmt.Errorf("profile: unknown gender %q", p.Gender)
	}
	switch domain.Goal(p.Goal) {
	case domain.GoalLose, domain.GoalMaintain, domain.GoalGain:
	default:
		return fmt.Errorf("profile: unknown goal %q", p.Goal)
	}
	return nil
}

// DomainProfile converts the TOML profile section to the domain type.
func (p ProfileConfig) DomainProfile() domain.Profile {
	return domain.Profile{
		WeightKg: p.WeightKg,
		HeightCm: p.HeightCm,
		Age:      p.Age,
		Gender:   domain.Gender(p.Gender),
		Activity: p.Activity,
		Goal:     domain.Goal(p.Goal),
	}
}

// nutriquestHome returns the NutriQuest data directory.
func nutriquestHome() string {
	if env := os.Getenv("NUTRIQUEST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nutriquest")
}

// Home is exported for use by other packages.
func Home() string {
	return nutriquestHome()
}
