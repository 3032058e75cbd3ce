package payment

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/gopay/pkg/db/models"
)

func printMethods(out io.Writer, methods []*models.PaymentMethod) error {
	if len(methods) == 0 {
		fmt.Fprintln(out, "No payment methods found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tACTIVE\tUSERS\tADMIN\tAUTO CAPTURE")
	for _, pm := range methods {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\t%s\t%s\n",
			pm.ID, pm.Name, pm.Type, pm.Active,
			pm.AvailableToUsers, pm.AvailableToAdmin, pm.AutoCapture)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Total: %d payment method(s)\n", len(methods))
	return nil
}
