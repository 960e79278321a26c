package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
)

func newProvisionCmd() *cobra.Command {
	var enterprise bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Prepare this host: packages, service user, source checkout",
		Long: `Install system packages (PostgreSQL, Python toolchain, nginx,
wkhtmltopdf), create the service OS user, create the shared directories
and clone the application source. Safe to re-run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, log, err := setup()
			if err != nil {
				return err
			}
			// Provision runs before PostgreSQL exists, so skip the database
			// connection the full manager would open.
			mgr := &odoo.Manager{
				Host:     host,
				Registry: odoo.NewRegistry(host),
				Run:      odoo.NewRunner(log),
				Log:      log,
			}
			return mgr.Provision(cmd.Context(), enterprise)
		},
	}
	cmd.Flags().BoolVar(&enterprise, "enterprise", false, "also clone the enterprise source tree")
	return cmd
}
