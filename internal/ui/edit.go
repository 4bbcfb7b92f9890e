package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

func (a *App) editCmd() *cobra.Command {
	var (
		name     string
		icon     string
		clock    string
		priority string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task's details",
		Long: `Edit a task's name, icon, time, priority or status.

Only the flags given are changed. A new time in another period moves the
task to that period on the same day.`,
		Example: `  weekboard edit 3f2a --name="Write the changelog"
  weekboard edit 3f2a --time=20:15 --priority=high
  weekboard edit 3f2a --icon=""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			flags := cmd.Flags()
			f, err := editFields(
				flagValue(flags.Changed("name"), name),
				flagValue(flags.Changed("icon"), icon),
				flagValue(flags.Changed("time"), clock),
				flagValue(flags.Changed("priority"), priority),
				flagValue(flags.Changed("status"), status),
			)
			if err != nil {
				return err
			}
			if f.IsEmpty() {
				return errors.New("nothing to change: pass at least one of --name, --icon, --time, --priority, --status")
			}

			ctx := cmd.Context()
			c, t, err := a.openTaskBoard(ctx, cmd.OutOrStdout(), args[0])
			if err != nil {
				return err
			}
			p, err := c.Edit(t.ID, f)
			if err != nil {
				return err
			}
			return c.Commit(ctx, p)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon (empty clears it)")
	cmd.Flags().StringVar(&clock, "time", "", "New time (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: low, medium, high or extreme")
	cmd.Flags().StringVar(&status, "status", "", "New status: pending or completed")

	return cmd
}

func flagValue(changed bool, v string) *string {
	if !changed {
		return nil
	}
	return &v
}

// editFields parses the given values into a partial update. Nil values stay unset.
func editFields(name, icon, clock, priority, status *string) (task.Fields, error) {
	f := task.Fields{Name: name, Icon: icon}
	if clock != nil {
		c, err := period.ParseClock(*clock)
		if err != nil {
			return task.Fields{}, err
		}
		f.Time = &c
	}
	if priority != nil {
		p, err := task.ParsePriority(*priority)
		if err != nil {
			return task.Fields{}, err
		}
		f.Priority = &p
	}
	if status != nil {
		s := task.Status(*status)
		if !s.Valid() {
			return task.Fields{}, fmt.Errorf("%w: %q", task.ErrInvalidStatus, *status)
		}
		f.Status = &s
	}
	return f, f.Validate()
}
