package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
)

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [id] [date] [period]",
		Short: "Move a task to another day and period",
		Long: `Move a task to another day and period.

The task keeps its time when the time already falls inside the new period.
Otherwise it takes the period's default time and the change is reported.
The id can be any unique prefix shown by 'weekboard list'.`,
		Example: `  weekboard move 3f2a9c1e tomorrow evening
  weekboard move 3f2a friday morning
  weekboard move 3f2a 2025-01-17 afternoon`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			date, err := dateutil.ParseRelativeDate(args[1], time.Now())
			if err != nil {
				return err
			}
			dest, err := period.Parse(args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c, t, err := a.openTaskBoard(ctx, out, args[0])
			if err != nil {
				return err
			}
			p, err := c.Move(t.ID, date, dest)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintf(out, "%q is already on %s %s\n", t.Name, dateutil.Format(date), dest)
				return nil
			}
			if err := c.Commit(ctx, p); err != nil {
				return err
			}

			res := p.Resolution()
			fmt.Fprintf(out, "Moved %q to %s %s at %s\n",
				t.Name, dateutil.Format(date), formatPeriod(res.Period), res.Time)
			return nil
		},
	}
}
