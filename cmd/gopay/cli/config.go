package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	envFiles    = []string{".env", ".env.local"}
	configPaths = []string{".", "./config", "/etc/gopay", "$HOME/.gopay"}
)

func initConfig(path string) error {
	dirs := configPaths
	if path != "" {
		viper.SetConfigFile(path)
		dirs = []string{filepath.Dir(path)}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		for _, dir := range configPaths {
			viper.AddConfigPath(dir)
		}
	}

	// The working directory wins over config directories; godotenv never
	// overrides variables that are already set
	loadEnvFiles(append([]string{"."}, dirs...))

	// GOPAY_PAYMENTS_AUTO_CAPTURE maps to payments.auto_capture
	viper.SetEnvPrefix("GOPAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

func loadEnvFiles(dirs []string) {
	for _, dir := range dirs {
		for _, envFile := range envFiles {
			// Missing .env files are not an error
			_ = godotenv.Load(filepath.Join(os.ExpandEnv(dir), envFile))
		}
	}
}
