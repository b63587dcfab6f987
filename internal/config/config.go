// Package config loads bloombox CLI settings from a YAML file, BLOOMBOX_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-bloombox/bloom"
)

// Default values applied before the config file and environment.
const (
	DefaultStoreDir      = "./filters"
	DefaultCompress      = false
	DefaultExpectedItems = uint64(10_000)
	DefaultFPRate        = 0.01
	DefaultLogLevel      = "INFO"
)

var (
	ErrConfigFile    = errors.New("config: cannot read config file")
	ErrEmptyStoreDir = errors.New("config: store.dir must not be empty")
	ErrBadLogLevel   = errors.New("config: log.level must be one of DEBUG, INFO, WARN, ERROR, NOOP")
)

// Config is the top-level configuration. Field tags use mapstructure for
// viper unmarshalling.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Log      LogConfig      `mapstructure:"log"`
}

type StoreConfig struct {
	Dir      string `mapstructure:"dir"`
	Compress bool   `mapstructure:"compress"`
}

// DefaultsConfig sizes filters created without explicit flags.
type DefaultsConfig struct {
	ExpectedItems uint64  `mapstructure:"expected_items"`
	FPRate        float64 `mapstructure:"fp_rate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return ErrEmptyStoreDir
	}

	if _, _, err := bloom.ComputeParameters(c.Defaults.ExpectedItems, c.Defaults.FPRate); err != nil {
		return fmt.Errorf("config: defaults: %w", err)
	}

	switch c.Log.Level {
	case "DEBUG", "INFO", "WARN", "ERROR", "NOOP":
	default:
		return fmt.Errorf("%w: got %q", ErrBadLogLevel, c.Log.Level)
	}

	return nil
}
