package config

import "github.com/spf13/viper"

func GetDefault() BaseConfig {
	return BaseConfig{
		ShutdownTimeout: "10s",

		Log: LogConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Metadata: MetadataConfig{
			Type: MetadataTypeSQLite,
			SQLite: MetadataSQLiteConfig{
				Path: "gopay.db",
			},
		},

		Payments: PaymentsConfig{
			AutoCapture:         false,
			SilenceDeprecations: false,
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := GetDefault()

	v.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.time_format", defaults.Log.TimeFormat)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.no_color", defaults.Log.NoColor)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	v.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	v.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	v.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	v.SetDefault("metadata.type", defaults.Metadata.Type)
	v.SetDefault("metadata.sqlite.path", defaults.Metadata.SQLite.Path)

	v.SetDefault("payments.auto_capture", defaults.Payments.AutoCapture)
	v.SetDefault("payments.silence_deprecations", defaults.Payments.SilenceDeprecations)
}
