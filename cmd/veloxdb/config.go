package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the connection and logging settings of the CLI.
type Config struct {
	// Dialect is the database dialect and driver name.
	// Default: "sqlite"
	Dialect string `yaml:"dialect" validate:"required,oneof=postgres mysql sqlite"`

	// DSN is the data source name passed to the driver.
	DSN string `yaml:"dsn" validate:"required"`

	// Schema is the path of the YAML schema document.
	Schema string `yaml:"schema" validate:"required"`

	// LogLevel is one of debug, info, warn or error.
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Debug logs every statement.
	Debug bool `yaml:"debug"`

	// SlowThreshold is the duration above which statements are logged as slow.
	// Default: 100ms
	SlowThreshold time.Duration `yaml:"slow_threshold" validate:"gte=0"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Dialect:       "sqlite",
		LogLevel:      "info",
		SlowThreshold: 100 * time.Millisecond,
	}
}

var configValidator = validator.New()

// validate reports the first invalid setting.
func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("config: invalid %s: failed %q", e.Field(), e.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// loadConfig reads the config file at path over the defaults. An empty
// path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
