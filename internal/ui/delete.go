package ui

import (
	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cmd.Context()
			c, t, err := a.openTaskBoard(ctx, cmd.OutOrStdout(), args[0])
			if err != nil {
				return err
			}
			p, err := c.Delete(t.ID)
			if err != nil {
				return err
			}
			return c.Commit(ctx, p)
		},
	}
}
