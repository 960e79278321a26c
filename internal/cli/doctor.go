package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that this host is ready to run instances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, log, err := setup()
			if err != nil {
				return err
			}
			// No eager database connection; the doctor reports a down
			// cluster as a warning.
			mgr := &odoo.Manager{
				Host:     host,
				Registry: odoo.NewRegistry(host),
				Run:      odoo.NewRunner(log),
				Log:      log,
			}
			return mgr.Doctor(cmd.Context())
		},
	}
}
