package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwantia/gopay/internal/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management utilities",
		Long: `Manage GoPay configuration files.

This command provides utilities for generating and validating
configuration files.`,
	}

	cmd.AddCommand(newConfigGenerateCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an example configuration file",
		Long: `Generate an example configuration file containing every default.

The generated config.yaml can be customized and placed in one of the
configuration search paths (., ./config, /etc/gopay, $HOME/.gopay).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, _ := cmd.Flags().GetString("output")
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			out := cmd.OutOrStdout()

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			filename := filepath.Join(outputDir, "config.yaml")
			if _, err := os.Stat(filename); err == nil && !overwrite {
				fmt.Fprintf(out, "Skipping %s (file exists, use --overwrite to replace)\n", filename)
				return nil
			}

			data, err := yaml.Marshal(config.GetDefault())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to write config file %s: %w", filename, err)
			}

			fmt.Fprintf(out, "Generated %s\n", filename)
			return nil
		},
	}

	cmd.Flags().String("output", ".", "output directory for configuration files")
	cmd.Flags().Bool("overwrite", false, "overwrite existing files")

	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (store: %s %s, auto_capture: %t)\n",
				cfg.Metadata.Type, cfg.Metadata.SQLite.Path, cfg.Payments.AutoCapture)
			return nil
		},
	}
}
