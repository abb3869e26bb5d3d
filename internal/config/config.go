// Package config holds teco's user-tunable settings. Values come from
// .teco/config.yaml and TECO_* environment variables through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the data directory.
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. TECO_PLANNER_POLICY.
const EnvPrefix = "TECO"

// Config is the complete teco configuration.
type Config struct {
	Planner PlannerConfig `mapstructure:"planner" yaml:"planner"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// PlannerConfig controls plan generation inputs.
type PlannerConfig struct {
	DefaultHoursPerWeek int    `mapstructure:"default_hours_per_week" yaml:"default_hours_per_week"`
	MinHoursPerWeek     int    `mapstructure:"min_hours_per_week" yaml:"min_hours_per_week"`
	MaxHoursPerWeek     int    `mapstructure:"max_hours_per_week" yaml:"max_hours_per_week"`
	Policy              string `mapstructure:"policy" yaml:"policy"`
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Level   string `mapstructure:"level" yaml:"level"`
}

// DisplayConfig controls presentation in the CLI and TUI.
type DisplayConfig struct {
	// DateFormat is a Go reference-time layout.
	DateFormat      string `mapstructure:"date_format" yaml:"date_format"`
	GenerateDelayMs int    `mapstructure:"generate_delay_ms" yaml:"generate_delay_ms"`
	UpcomingStages  int    `mapstructure:"upcoming_stages" yaml:"upcoming_stages"`
}

// GenerateDelay is the pause shown before a new plan appears.
func (d DisplayConfig) GenerateDelay() time.Duration {
	return time.Duration(d.GenerateDelayMs) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DefaultHoursPerWeek: 10,
			MinHoursPerWeek:     1,
			MaxHoursPerWeek:     40,
			Policy:              "independent",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "INFO",
		},
		Display: DisplayConfig{
			DateFormat:      "02/01/2006",
			GenerateDelayMs: 1500,
			UpcomingStages:  3,
		},
	}
}

// SetDefaults registers Default() with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("planner.default_hours_per_week", defaults.Planner.DefaultHoursPerWeek)
	viper.SetDefault("planner.min_hours_per_week", defaults.Planner.MinHoursPerWeek)
	viper.SetDefault("planner.max_hours_per_week", defaults.Planner.MaxHoursPerWeek)
	viper.SetDefault("planner.policy", defaults.Planner.Policy)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	viper.SetDefault("display.date_format", defaults.Display.DateFormat)
	viper.SetDefault("display.generate_delay_ms", defaults.Display.GenerateDelayMs)
	viper.SetDefault("display.upcoming_stages", defaults.Display.UpcomingStages)
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// the loaded values are invalid.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Path returns the config file location for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// WriteDefault writes Default() as YAML to path. An existing file is
// left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
