package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
	"github.com/example/odooctl/internal/tui"
)

func newRemoveCmd() *cobra.Command {
	var (
		name  string
		yes   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an instance and every artifact derived from its name",
		Long: `Stop and delete the service unit, drop every database owned by the
instance role, drop the role, and delete config, directory tree, log and
proxy configuration. Without --name an interactive picker lists the
registered instances.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, log, err := setup()
			if err != nil {
				return err
			}
			if name == "" {
				return tui.RunRemoveWizard(host)
			}

			reg := odoo.NewRegistry(host)
			exists, err := reg.Exists(name)
			if err != nil {
				return err
			}
			// --force skips the registry check to clean up the leftovers of
			// a create that failed before the config file was written.
			if !exists && !force {
				return &odoo.NotFoundError{Name: name}
			}

			if !yes && !confirmRemoval(name) {
				return fmt.Errorf("aborted")
			}

			mgr, err := odoo.NewManager(host, log)
			if err != nil {
				return err
			}
			if err := mgr.Remove(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Printf("instance %s removed\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "instance to remove (omit for the interactive picker)")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&force, "force", false, "remove leftovers even if the instance is not registered")
	return cmd
}

func confirmRemoval(name string) bool {
	fmt.Printf("This permanently deletes instance %q, its databases and all its files.\n", name)
	fmt.Print("Type 'yes' to continue: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}
