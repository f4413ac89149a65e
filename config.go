package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/example/tinytrainer/render"
	"github.com/example/tinytrainer/sim"
)

// Default configuration values.
const (
	DefaultAddr          = "127.0.0.1:8080"
	DefaultActivityLevel = 3
	DefaultHeadlessTicks = 50
	DefaultStaticDir     = "web/static"
	MaxActivityLevel     = 8
)

// Config holds trainer settings, loadable from a YAML file and overridable
// via flags.
type Config struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
	LogLevel  string `yaml:"log_level"`

	Headless      bool `yaml:"headless"`
	HeadlessTicks int  `yaml:"headless_ticks"`

	View          string `yaml:"view"`
	ActivityLevel int    `yaml:"activity_level"`

	// Seed fixes the random source for reproducible sessions. Zero means
	// seed from the clock.
	Seed int64 `yaml:"seed"`

	FaultRate    float64 `yaml:"fault_rate"`
	RecoveryRate float64 `yaml:"recovery_rate"`
	AutoRecover  bool    `yaml:"auto_recover"`
}

// DefaultConfig returns the standard demo configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:          DefaultAddr,
		StaticDir:     DefaultStaticDir,
		LogLevel:      "info",
		HeadlessTicks: DefaultHeadlessTicks,
		View:          string(render.ViewConcept),
		ActivityLevel: DefaultActivityLevel,
		FaultRate:     sim.DefaultFaultRate,
		RecoveryRate:  sim.DefaultRecoveryRate,
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.StaticDir == "" {
		c.StaticDir = def.StaticDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.HeadlessTicks == 0 {
		c.HeadlessTicks = def.HeadlessTicks
	}
	if c.View == "" {
		c.View = def.View
	}
	if c.ActivityLevel == 0 {
		c.ActivityLevel = def.ActivityLevel
	}
	if c.FaultRate == 0 {
		c.FaultRate = def.FaultRate
	}
	if c.RecoveryRate == 0 {
		c.RecoveryRate = def.RecoveryRate
	}
}

// Validate checks configuration consistency before a session starts.
func (c *Config) Validate() error {
	if c.ActivityLevel < 1 || c.ActivityLevel > MaxActivityLevel {
		return errors.Errorf("activity_level must be in [1, %d], got %d", MaxActivityLevel, c.ActivityLevel)
	}
	if c.FaultRate < 0 || c.FaultRate > 1 {
		return errors.Errorf("fault_rate must be in [0, 1], got %g", c.FaultRate)
	}
	if c.RecoveryRate < 0 || c.RecoveryRate > 1 {
		return errors.Errorf("recovery_rate must be in [0, 1], got %g", c.RecoveryRate)
	}
	if c.Headless && c.HeadlessTicks < 1 {
		return errors.Errorf("headless_ticks must be positive, got %d", c.HeadlessTicks)
	}
	switch strings.ToLower(c.View) {
	case "concept", "plc":
	default:
		return errors.Errorf("unknown view %q", c.View)
	}
	return nil
}

// TickOptions derives the simulation engine options from the config.
func (c *Config) TickOptions() sim.Options {
	return sim.Options{
		FaultRate:    c.FaultRate,
		RecoveryRate: c.RecoveryRate,
		AutoRecover:  c.AutoRecover,
	}
}
