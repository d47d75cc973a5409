package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("File", func(t *testing.T) {
		path := writeFile(t, "veloxdb.yaml", `
dialect: postgres
dsn: postgres://localhost/app
schema: schema.yaml
log_level: debug
debug: true
slow_threshold: 250ms
`)
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Config{
			Dialect:       "postgres",
			DSN:           "postgres://localhost/app",
			Schema:        "schema.yaml",
			LogLevel:      "debug",
			Debug:         true,
			SlowThreshold: 250 * time.Millisecond,
		}, cfg)
		require.NoError(t, cfg.validate())
	})

	t.Run("PartialKeepsDefaults", func(t *testing.T) {
		path := writeFile(t, "veloxdb.yaml", "dsn: file:app.db\n")
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Dialect)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 100*time.Millisecond, cfg.SlowThreshold)
	})

	t.Run("UnknownField", func(t *testing.T) {
		path := writeFile(t, "veloxdb.yaml", "driver: postgres\n")
		_, err := loadConfig(path)
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.DSN = "file:app.db"
		cfg.Schema = "schema.yaml"
		return cfg
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(*Config) {}, ""},
		{"UnknownDialect", func(c *Config) { c.Dialect = "oracle" }, "Dialect"},
		{"MissingDSN", func(c *Config) { c.DSN = "" }, "DSN"},
		{"MissingSchema", func(c *Config) { c.Schema = "" }, "Schema"},
		{"UnknownLevel", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
		{"NegativeThreshold", func(c *Config) { c.SlowThreshold = -time.Second }, "SlowThreshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
