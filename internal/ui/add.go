package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		clock    string
		per      string
		icon     string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new task",
		Long: `Add a new task to the board.

The task needs a time or a period. A period alone places the task at the
period's default time (dawn 04:00, morning 09:00, afternoon 14:00, evening 19:00).`,
		Example: `  weekboard add "Write documentation" --time=09:30
  weekboard add "Gym" --date=tomorrow --period=evening --icon=🏋
  weekboard add "Pay rent" --date=next-monday --period=morning --priority=high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}
			at, err := resolveClock(clock, per)
			if err != nil {
				return err
			}

			t, err := task.New(args[0], icon, dateutil.Format(day), at.String(), priority)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c, err := a.openBoard(ctx, out, t.Date)
			if err != nil {
				return err
			}
			p, err := c.Create(t)
			if err != nil {
				return err
			}
			if err := c.Commit(ctx, p); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(out, "%s %s %s %s\n",
				formatMuted(shortID(t.ID)),
				dateutil.Format(t.Date),
				formatPeriod(t.Period()),
				t.Time,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow, monday, next-friday, ...)")
	cmd.Flags().StringVar(&clock, "time", "", "Time (HH:MM)")
	cmd.Flags().StringVar(&per, "period", "", "Period: dawn, morning, afternoon or evening")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon shown next to the name")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: low, medium, high or extreme")

	return cmd
}

// resolveClock picks the time from --time and --period. With both set they must agree.
func resolveClock(clock, per string) (period.Clock, error) {
	switch {
	case clock == "" && per == "":
		return 0, errors.New("either --time or --period is required")
	case clock == "":
		p, err := period.Parse(per)
		if err != nil {
			return 0, err
		}
		return p.Default(), nil
	}

	c, err := period.ParseClock(clock)
	if err != nil {
		return 0, err
	}
	if per != "" {
		p, err := period.Parse(per)
		if err != nil {
			return 0, err
		}
		if !p.Contains(c) {
			return 0, fmt.Errorf("%w: %s is %s, not %s", task.ErrPeriodMismatch, c, period.Classify(c), p)
		}
	}
	return c, nil
}
