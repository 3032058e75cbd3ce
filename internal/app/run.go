package app

import (
	"context"
	"fmt"

	"github.com/mwantia/gopay/internal/config"
)

// Run loads the configuration, opens the app, hands it to fn and closes it
// again. Payment defaults are read from viper on every resolution.
func Run(ctx context.Context, fn func(context.Context, *GoPayApp) error) error {
	return RunWith(ctx, OpenOptions{}, fn)
}

// RunWith is Run with explicit open options.
func RunWith(ctx context.Context, opts OpenOptions, fn func(context.Context, *GoPayApp) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app := NewApp(cfg, config.NewLiveDefaults(nil))
	if err := app.OpenWith(ctx, opts); err != nil {
		_ = app.Close()
		return fmt.Errorf("failed to open gopay: %w", err)
	}

	runErr := fn(ctx, app)

	if err := app.Close(); err != nil {
		if runErr != nil {
			app.Logger().Error("Failed to close: %v", err)
			return runErr
		}
		return err
	}
	return runErr
}
