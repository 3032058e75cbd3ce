package setup

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwantia/gopay/internal/app"
	"github.com/mwantia/gopay/pkg/db/migrations"
	"github.com/mwantia/gopay/pkg/db/seed"
)

// manual opens the store without migrating it, so the migration commands
// see and change the schema as it is
var manual = app.OpenOptions{SkipMigrate: true}

func NewDatabaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the payment database",
		Long:  "Apply, roll back and inspect schema migrations, and seed payment methods and stores from fixtures.",
	}

	cmd.AddCommand(newDatabaseMigrateCommand())
	cmd.AddCommand(newDatabaseRollbackCommand())
	cmd.AddCommand(newDatabaseStatusCommand())
	cmd.AddCommand(newDatabaseSeedCommand())

	return cmd
}

func newDatabaseMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunWith(cmd.Context(), manual, func(ctx context.Context, a *app.GoPayApp) error {
				applied, err := migrations.NewMigrator(a.Store().DB()).Migrate(ctx)
				if err != nil {
					return err
				}

				if applied == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
				return nil
			})
		},
	}
}

func newDatabaseRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunWith(cmd.Context(), manual, func(ctx context.Context, a *app.GoPayApp) error {
				reverted, err := migrations.NewMigrator(a.Store().DB()).Rollback(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back migration %d (%s)\n", reverted.Version, reverted.Description)
				return nil
			})
		},
	}
}

func newDatabaseStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunWith(cmd.Context(), manual, func(ctx context.Context, a *app.GoPayApp) error {
				statuses, err := migrations.NewMigrator(a.Store().DB()).Status(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tDESCRIPTION\tAPPLIED")
				for _, s := range statuses {
					fmt.Fprintf(w, "%d\t%s\t%t\n", s.Version, s.Description, s.Applied)
				}
				return w.Flush()
			})
		},
	}
}

func newDatabaseSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Create payment methods and stores from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			return app.Run(cmd.Context(), func(ctx context.Context, a *app.GoPayApp) error {
				result, err := seed.Apply(ctx, a.Store(), fixture)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Created %d payment method(s) and %d store(s)\n",
					result.PaymentMethods, result.Stores)
				return nil
			})
		},
	}
}
