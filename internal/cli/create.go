package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
	"github.com/example/odooctl/internal/tui"
)

func newCreateCmd() *cobra.Command {
	var opts odoo.CreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new Odoo instance",
		Long: `Create a new instance: database role, directory tree, virtualenv,
config file, systemd unit and nginx vhost. Without flags an interactive
wizard collects the answers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, log, err := setup()
			if err != nil {
				return err
			}
			if opts.Name == "" {
				return tui.RunCreateWizard(host)
			}

			mgr, err := odoo.NewManager(host, log)
			if err != nil {
				return err
			}
			res, err := mgr.Create(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printCreateSummary(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "instance name (omit for the interactive wizard)")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "domain routed to this instance")
	cmd.Flags().BoolVar(&opts.Enterprise, "enterprise", false, "include the enterprise addons tree")
	cmd.Flags().BoolVar(&opts.SSL, "ssl", false, "obtain a certificate and terminate HTTPS")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email for certificate issuance (with --ssl)")
	return cmd
}

// printCreateSummary is the only durable record of the generated secrets.
func printCreateSummary(res *odoo.CreateResult) {
	scheme := "http"
	if res.SSL {
		scheme = "https"
	}
	fmt.Println("instance created")
	fmt.Printf("  name:           %s\n", res.Name)
	fmt.Printf("  url:            %s://%s\n", scheme, res.Domain)
	fmt.Printf("  http port:      %d\n", res.HTTPPort)
	fmt.Printf("  gevent port:    %d\n", res.GeventPort)
	fmt.Printf("  superadmin pw:  %s\n", res.AdminSecret)
	fmt.Printf("  database pw:    %s\n", res.DBSecret)
	fmt.Printf("  config:         %s\n", res.Paths.ConfigFile)
	fmt.Printf("  instance dir:   %s\n", res.Paths.InstanceDir)
	fmt.Printf("  service:        %s\n", res.Paths.UnitName)
	if res.CertFile != "" {
		fmt.Printf("  certificate:    %s\n", res.CertFile)
	}
	fmt.Println("store the superadmin password now; it is not shown again")
}
