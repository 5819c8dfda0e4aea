package commands

import (
	"github.com/spf13/cobra"

	"github.com/atinyakov/accountkeeper/internal/client/shell"
)

func shellCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit accounts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell.New(c.app.Store, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
			return nil
		},
	}
}
