package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwantia/gopay/internal/app"
	"github.com/mwantia/gopay/internal/payments"
	"github.com/mwantia/gopay/pkg/availability"
)

func NewMethodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "methods",
		Aliases: []string{"pm"},
		Short:   "Query payment methods",
		Long:    "List payment methods by audience and store, and resolve their effective settings.",
	}

	cmd.AddCommand(newMethodsListCommand())
	cmd.AddCommand(newMethodsAvailableCommand())
	cmd.AddCommand(newMethodsCaptureCommand())

	return cmd
}

func newMethodsListCommand() *cobra.Command {
	var filter payments.Filter
	var useSQL bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		Long: `List payment methods, optionally narrowed to those available to users,
to the admin, that are active, or that belong to a store. A store without
payment methods does not narrow the list.

Example:
  gopay methods list --users --admin
  gopay methods list --active --users --store main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), func(ctx context.Context, a *app.GoPayApp) error {
				list := a.Payments().List
				if useSQL {
					list = a.Payments().ListSQL
				}

				methods, err := list(ctx, filter)
				if err != nil {
					return err
				}
				return printMethods(cmd.OutOrStdout(), methods)
			})
		},
	}

	cmd.Flags().BoolVar(&filter.Users, "users", false, "only payment methods available to users")
	cmd.Flags().BoolVar(&filter.Admin, "admin", false, "only payment methods available to the admin")
	cmd.Flags().BoolVar(&filter.ActiveOnly, "active", false, "only active payment methods")
	cmd.Flags().StringVar(&filter.StoreCode, "store", "", "only payment methods of the store with this code")
	cmd.Flags().BoolVar(&useSQL, "sql", false, "filter in the database instead of in memory")

	return cmd
}

func newMethodsAvailableCommand() *cobra.Command {
	var mode string
	var storeCode string

	cmd := &cobra.Command{
		Use:        "available",
		Short:      "List available payment methods by display mode",
		Deprecated: "use 'methods list --active' with --users, --admin and --store instead",
		Args:       cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := availability.ParseMode(mode)
			if err != nil {
				return err
			}

			return app.Run(cmd.Context(), func(ctx context.Context, a *app.GoPayApp) error {
				methods, err := a.Payments().Available(ctx, parsed, storeCode)
				if err != nil {
					return err
				}
				return printMethods(cmd.OutOrStdout(), methods)
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "display mode (front_end, back_end, both)")
	cmd.Flags().StringVar(&storeCode, "store", "", "code of the store to restrict to")

	return cmd
}

func newMethodsCaptureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "capture <id>",
		Short: "Show whether a payment method auto-captures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid payment method id '%s': %w", args[0], err)
			}

			return app.Run(cmd.Context(), func(ctx context.Context, a *app.GoPayApp) error {
				enabled, err := a.Payments().AutoCapture(ctx, uint(id))
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "auto_capture: %t\n", enabled)
				return nil
			})
		},
	}
}
