// Package config provides Viper-based configuration loading for the attack
// simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds defaults for attack resolution and distribution runs.
type SimulationConfig struct {
	// Throws is the number of trials run when a distribution is requested.
	Throws int `mapstructure:"throws"`
	// AttackModifier is added to every displayed attack roll.
	AttackModifier int `mapstructure:"attack_modifier"`
	// Seed selects a reproducible random source; 0 uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
	// ChartWidth is the width in characters of the longest histogram bar.
	ChartWidth int `mapstructure:"chart_width"`
	// Color enables ANSI colors in rendered output.
	Color bool `mapstructure:"color"`
	// PresetsFile is an optional YAML file of named attack formulas.
	PresetsFile string `mapstructure:"presets_file"`
}

// RunTestConfig holds settings for the randomness run test.
type RunTestConfig struct {
	SignificanceLevel float64 `mapstructure:"significance_level"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	RunTest    RunTestConfig    `mapstructure:"runtest"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRunTest(c.RunTest); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Throws < 1 {
		errs = append(errs, fmt.Sprintf("simulation.throws must be >= 1, got %d", s.Throws))
	}
	if s.ChartWidth < 1 {
		errs = append(errs, fmt.Sprintf("simulation.chart_width must be >= 1, got %d", s.ChartWidth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRunTest(r RunTestConfig) error {
	if !(r.SignificanceLevel > 0 && r.SignificanceLevel < 1) {
		return fmt.Errorf("runtest.significance_level must be in (0, 1), got %v", r.SignificanceLevel)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ATTACKROLL_ prefix
	v.SetEnvPrefix("ATTACKROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.throws", 10000)
	v.SetDefault("simulation.attack_modifier", 0)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.chart_width", 60)
	v.SetDefault("simulation.color", true)
	v.SetDefault("simulation.presets_file", "")

	v.SetDefault("runtest.significance_level", 0.05)
}
