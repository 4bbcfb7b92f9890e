package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/task"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one task.
var ErrAmbiguousID = errors.New("id prefix matches more than one task")

// shortIDLen is how much of a task ID the list command prints.
const shortIDLen = 8

// openBoard loads the week containing weekOf into a controller that reports to w.
func (a *App) openBoard(ctx context.Context, w io.Writer, weekOf time.Time) (*board.Controller, error) {
	c := board.NewController(a.repo,
		board.WithLogger(a.logger),
		board.WithNotifier(notify.Multi(consoleNotifier(w), notify.Log(a.logger))),
		board.WithDragThreshold(a.config.Board.DragThreshold),
	)
	if err := c.Load(ctx, weekOf); err != nil {
		return nil, err
	}
	return c, nil
}

// openTaskBoard resolves id and loads the week the task lives in.
func (a *App) openTaskBoard(ctx context.Context, w io.Writer, id string) (*board.Controller, *task.Task, error) {
	t, err := a.resolveTask(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	c, err := a.openBoard(ctx, w, t.Date)
	if err != nil {
		return nil, nil, err
	}
	return c, t, nil
}

// resolveTask finds a task by full ID or by a unique ID prefix.
func (a *App) resolveTask(ctx context.Context, id string) (*task.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, task.ErrEmptyID
	}
	t, err := a.repo.GetTask(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, task.ErrTaskNotFound) {
		return nil, fmt.Errorf("getting task: %w", err)
	}

	all, err := a.repo.ListAllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	var match *task.Task
	for _, candidate := range all {
		if !strings.HasPrefix(candidate.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
		match = candidate
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
