// Package config loads the runtime configuration of the simulator.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration file.
type Config struct {
	// TickIntervalMs is the wall time between ticks.
	TickIntervalMs int `yaml:"tick_interval_ms"`
	// Workers bounds the goroutines per emitter tick; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Preset is the name of the preset loaded at startup, if any.
	Preset    string      `yaml:"preset"`
	Store     StoreConfig `yaml:"store"`
	LogPrefix string      `yaml:"log_prefix"`
}

// StoreConfig selects where presets are kept.
type StoreConfig struct {
	AppName string `yaml:"app_name"`
	Object  string `yaml:"object"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickIntervalMs: 16,
		Store: StoreConfig{
			AppName: "ember",
			Object:  "presets",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Store.AppName == "" {
		errs = append(errs, errors.New("store.app_name is required"))
	}
	return errors.Join(errs...)
}

// TickInterval returns TickIntervalMs as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}
