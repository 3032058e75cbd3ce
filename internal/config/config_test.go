package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, GetDefault(), *cfg)
	assert.Equal(t, MetadataTypeSQLite, cfg.Metadata.Type)
	assert.False(t, cfg.Payments.AutoCapture)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
metadata:
  sqlite:
    path: /var/lib/gopay/gopay.db
payments:
  auto_capture: true
  silence_deprecations: true
log:
  level: debug
`), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/gopay/gopay.db", cfg.Metadata.SQLite.Path)
	assert.True(t, cfg.Payments.AutoCapture)
	assert.True(t, cfg.Payments.SilenceDeprecations)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "10s", cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BaseConfig)
	}{
		{name: "bad shutdown timeout", mutate: func(c *BaseConfig) { c.ShutdownTimeout = "soon" }},
		{name: "unknown metadata type", mutate: func(c *BaseConfig) { c.Metadata.Type = "postgres" }},
		{name: "empty sqlite path", mutate: func(c *BaseConfig) { c.Metadata.SQLite.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := GetDefault()
	assert.NoError(t, cfg.Validate())
}

func TestLiveDefaultsRereadsViper(t *testing.T) {
	v := viper.New()
	defaults := NewLiveDefaults(v)

	assert.False(t, defaults.Bool("auto_capture"))

	v.Set("payments.auto_capture", true)
	assert.True(t, defaults.Bool("auto_capture"))

	v.Set("payments.auto_capture", false)
	assert.False(t, defaults.Bool("auto_capture"))
}
