// Package cli wires the odooctl command surface. Commands stay thin:
// flag parsing and output formatting here, all semantics in internal/odoo.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/odooctl/internal/odoo"
)

var verbose bool

// Execute runs the root command and exits nonzero on any error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "odooctl",
		Short:         "Manage self-hosted Odoo instances on this machine",
		Long: `odooctl provisions a Linux host for Odoo and manages the full lifecycle
of isolated instances: PostgreSQL role, source checkout, virtualenv,
config file, systemd unit, nginx vhost and optional TLS certificate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including every external command")

	root.AddCommand(
		newProvisionCmd(),
		newCreateCmd(),
		newRemoveCmd(),
		newListCmd(),
		newBackupCmd(),
		newDoctorCmd(),
	)
	return root
}

// setup loads .env overrides (e.g. ODOOCTL_DB_PASSWORD), the host layout
// and the logger.
func setup() (odoo.Host, *zap.Logger, error) {
	_ = godotenv.Load()
	host, err := odoo.LoadHost()
	if err != nil {
		return odoo.Host{}, nil, err
	}
	return host, odoo.NewLogger(verbose), nil
}
