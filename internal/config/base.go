package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BaseConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
	Metadata MetadataConfig `mapstructure:"metadata" yaml:"metadata"`
	Payments PaymentsConfig `mapstructure:"payments" yaml:"payments"`
}

// Load reads the configuration from the global viper instance.
func Load() (*BaseConfig, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom registers the defaults on v and unmarshals it.
func LoadFrom(v *viper.Viper) (*BaseConfig, error) {
	cfg := &BaseConfig{}

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *BaseConfig) Validate() error {
	if _, err := time.ParseDuration(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout '%s': %w", cfg.ShutdownTimeout, err)
	}

	switch cfg.Metadata.Type {
	case MetadataTypeSQLite:
		if cfg.Metadata.SQLite.Path == "" {
			return fmt.Errorf("metadata.sqlite.path must not be empty")
		}
	default:
		return fmt.Errorf("unsupported metadata type '%s'", cfg.Metadata.Type)
	}

	return nil
}
