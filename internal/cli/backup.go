package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/odooctl/internal/odoo"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <name>",
		Short: "Dump every database owned by an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, log, err := setup()
			if err != nil {
				return err
			}
			mgr, err := odoo.NewManager(host, log)
			if err != nil {
				return err
			}
			written, err := mgr.Backup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(written) == 0 {
				fmt.Println("no databases to dump")
				return nil
			}
			for _, path := range written {
				fmt.Printf("wrote %s\n", path)
			}
			return nil
		},
	}
}
