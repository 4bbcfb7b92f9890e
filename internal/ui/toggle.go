package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle [id]",
		Aliases: []string{"done"},
		Short:   "Toggle a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c, t, err := a.openTaskBoard(ctx, out, args[0])
			if err != nil {
				return err
			}
			p, err := c.ToggleComplete(t.ID)
			if err != nil {
				return err
			}
			if err := c.Commit(ctx, p); err != nil {
				return err
			}

			after := p.After()
			fmt.Fprintf(out, "%s %q is %s\n", statusSymbol(after.Status), after.Name, after.Status)
			return nil
		},
	}
}
