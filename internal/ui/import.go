package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekboard/internal/task"
)

// batchCreator is implemented by stores that can insert many tasks atomically.
type batchCreator interface {
	CreateTasks(ctx context.Context, tasks []*task.Task) error
}

// ImportResult counts what an import did.
type ImportResult struct {
	Imported int
	Skipped  int // already present
}

func (a *App) importCmd() *cobra.Command {
	var atomic bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks from a YAML file",
		Long: `Import tasks from a YAML file written by 'weekboard export'.

Records without an id get a new one. Tasks whose id already exists are
skipped. With --atomic the whole file is inserted in one transaction and
any existing id aborts the import (sqlite backend only).`,
		Example: `  weekboard import tasks.yaml
  weekboard export | weekboard import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			source := "stdin"
			if args[0] != "-" {
				path, err := resolvePath(args[0])
				if err != nil {
					return err
				}
				info, err := os.Stat(path)
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("import file does not exist: %s", path)
					}
					return fmt.Errorf("checking import file: %w", err)
				}
				if info.IsDir() {
					return fmt.Errorf("import path is a directory: %s", path)
				}
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
				source = path
			}

			tasks, err := readTasks(r)
			if err != nil {
				return err
			}

			var res ImportResult
			if atomic {
				res, err = importAtomic(cmd.Context(), a.repo, tasks)
			} else {
				res, err = importTasks(cmd.Context(), a.repo, tasks)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s", res.Imported, source)
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already present)", res.Skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&atomic, "atomic", false, "Insert all tasks in one transaction")

	return cmd
}

// readTasks decodes a YAML list of records. Records without an id get a fresh one.
func readTasks(r io.Reader) ([]*task.Task, error) {
	var records []task.Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}

	tasks := make([]*task.Task, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.ID) == "" {
			rec.ID = uuid.NewString()
		}
		t, err := rec.Task()
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i+1, rec.Name, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func importTasks(ctx context.Context, dest task.Repository, tasks []*task.Task) (ImportResult, error) {
	var res ImportResult
	for _, t := range tasks {
		if err := dest.CreateTask(ctx, t); err != nil {
			if errors.Is(err, task.ErrDuplicateTask) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("importing task %q: %w", t.Name, err)
		}
		res.Imported++
	}
	return res, nil
}

func importAtomic(ctx context.Context, dest task.Repository, tasks []*task.Task) (ImportResult, error) {
	batch, ok := dest.(batchCreator)
	if !ok {
		return ImportResult{}, errors.New("--atomic is not supported by this storage backend")
	}
	if err := batch.CreateTasks(ctx, tasks); err != nil {
		return ImportResult{}, fmt.Errorf("importing tasks: %w", err)
	}
	return ImportResult{Imported: len(tasks)}, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
