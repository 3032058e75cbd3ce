package payment

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwantia/gopay/internal/app"
)

func NewStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Query stores",
	}

	cmd.AddCommand(newStoresListCommand())

	return cmd
}

func newStoresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stores and their payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), func(ctx context.Context, a *app.GoPayApp) error {
				stores, err := a.Store().ListStores(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(stores) == 0 {
					fmt.Fprintln(out, "No stores found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CODE\tNAME\tPAYMENT METHODS")
				for _, s := range stores {
					methods := "(all)"
					if len(s.PaymentMethods) > 0 {
						names := make([]string, 0, len(s.PaymentMethods))
						for _, pm := range s.PaymentMethods {
							names = append(names, pm.Name)
						}
						methods = strings.Join(names, ", ")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\n", s.Code, s.Name, methods)
				}
				return w.Flush()
			})
		},
	}
}
