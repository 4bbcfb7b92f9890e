package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		week string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a week",
		Long: `List the tasks of a week grouped by day and period.

--week takes any date inside the week (default: today).
--all lists every stored task instead.`,
		Example: `  weekboard list
  weekboard list --week=next-week
  weekboard list --week=2025-01-15
  weekboard list --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				tasks, err := a.repo.ListAllTasks(ctx)
				if err != nil {
					return fmt.Errorf("listing tasks: %w", err)
				}
				printTaskLines(out, tasks)
				return nil
			}

			weekOf, err := dateutil.ParseRelativeDate(week, time.Now())
			if err != nil {
				return err
			}
			start, tasks, err := board.FetchWeek(ctx, a.repo, weekOf)
			if err != nil {
				return err
			}
			grid, skipped := task.NewGridFromTasks(start, tasks)
			for _, s := range skipped {
				a.logger.Warn("skipping task", "id", s.Task.ID, "reason", s.Reason)
			}
			printWeek(out, grid, termWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week to list (default: today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every task")

	return cmd
}

// printWeek prints a grid day by day. Empty periods are left out.
func printWeek(w io.Writer, g *task.Grid, width int) {
	end := g.EndDate()
	fmt.Fprintln(w, formatHeader(fmt.Sprintf("Week of %s – %s", dateutil.Format(g.StartDate), dateutil.Format(end))))

	if g.Len() == 0 {
		fmt.Fprintln(w, "No tasks this week.")
		return
	}

	for i := range task.DaysPerWeek {
		d := g.Day(i)
		if d.Len() == 0 {
			continue
		}
		stats := d.Stats()
		fmt.Fprintf(w, "\n%s %s\n",
			formatHeader(fmt.Sprintf("=== %s %s ===", task.WeekdayName(i), dateutil.Format(d.Date))),
			formatMuted(fmt.Sprintf("%d/%d done", stats.Completed, stats.Total)),
		)
		for _, p := range period.All() {
			cell := d.Cell(p)
			if len(cell) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s\n", formatPeriod(p))
			for _, t := range cell {
				fmt.Fprintf(w, "    %s\n", taskLine(t, width-4))
			}
		}
	}
}

// printTaskLines prints tasks one per line with their date.
func printTaskLines(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %s\n", dateutil.Format(t.Date), taskLine(t, termWidth()-11))
	}
}

// taskLine renders "○ 09:30 abcd1234 🏋 Name [high]", truncated to width.
func taskLine(t *task.Task, width int) string {
	var b strings.Builder
	b.WriteString(statusSymbol(t.Status))
	b.WriteString(" ")
	b.WriteString(t.Time.String())
	b.WriteString(" ")
	b.WriteString(formatMuted(shortID(t.ID)))
	b.WriteString(" ")
	if t.Icon != "" {
		b.WriteString(t.Icon)
		b.WriteString(" ")
	}
	b.WriteString(formatName(t))
	if t.Priority != task.PriorityMedium {
		b.WriteString(" ")
		b.WriteString(formatMuted("[" + t.Priority.String() + "]"))
	}
	line := b.String()
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}

func statusSymbol(s task.Status) string {
	switch s {
	case task.StatusPending:
		return "○"
	case task.StatusCompleted:
		return "✓"
	default:
		return "?"
	}
}
