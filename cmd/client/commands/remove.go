package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func removeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := c.app.Store.Get(id); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no account", id)
				return nil
			}
			if err := c.app.Store.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed", id)
			return nil
		},
	}
}

func checkCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Report whether an account passes validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, ok := c.app.Store.Get(args[0])
			if !ok {
				return fmt.Errorf("no account %s", args[0])
			}
			if !c.app.Store.IsPersistable(acc) {
				return fmt.Errorf("%s: %w", acc.ID, errIncomplete)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok", acc.ID)
			return nil
		},
	}
}
