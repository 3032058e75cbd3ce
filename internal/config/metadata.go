package config

const MetadataTypeSQLite = "sqlite"

// MetadataConfig holds payment store configuration
type MetadataConfig struct {
	Type   string               `mapstructure:"type"   yaml:"type"`
	SQLite MetadataSQLiteConfig `mapstructure:"sqlite" yaml:"sqlite"`
}

// MetadataSQLiteConfig holds SQLite-specific configuration
type MetadataSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
