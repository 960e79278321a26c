package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered instances with their ports",
		RunE: func(_ *cobra.Command, _ []string) error {
			host, _, err := setup()
			if err != nil {
				return err
			}
			// Listing never needs the database; build the manager pieces by hand.
			mgr := &odoo.Manager{Host: host, Registry: odoo.NewRegistry(host)}
			infos, err := mgr.Instances()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("no instances")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tHTTP\tGEVENT\tDOMAIN\tSSL")
			for _, info := range infos {
				ssl := ""
				if info.SSL {
					ssl = "yes"
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
					info.Name, info.HTTPPort, info.GeventPort, info.Domain, ssl)
			}
			return w.Flush()
		},
	}
}
