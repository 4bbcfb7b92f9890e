package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/task"
)

func (a *App) exportCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks as YAML",
		Long: `Export tasks as a YAML list.

Without a file, or with "-", the YAML is written to stdout.
--week limits the export to the week containing the given date.`,
		Example: `  weekboard export > tasks.yaml
  weekboard export backup.yaml --week=today`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tasks, err := a.exportTasks(cmd.Context(), week)
			if err != nil {
				return err
			}

			if len(args) == 0 || args[0] == "-" {
				return writeTasks(cmd.OutOrStdout(), tasks)
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := writeTasks(f, tasks); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing export file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Only export the week containing this date")

	return cmd
}

func (a *App) exportTasks(ctx context.Context, week string) ([]*task.Task, error) {
	if week == "" {
		tasks, err := a.repo.ListAllTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tasks: %w", err)
		}
		return tasks, nil
	}
	weekOf, err := dateutil.ParseRelativeDate(week, time.Now())
	if err != nil {
		return nil, err
	}
	_, tasks, err := board.FetchWeek(ctx, a.repo, weekOf)
	return tasks, err
}

// writeTasks encodes tasks as a YAML list of records.
func writeTasks(w io.Writer, tasks []*task.Task) error {
	records := make([]task.Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, task.NewRecord(t))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	return enc.Close()
}
