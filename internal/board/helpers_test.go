package board

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Monday, January 13, 2025
var monday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)

var errStore = errors.New("store unavailable")

func day(i int) time.Time { return monday.AddDate(0, 0, i) }

func mk(id string, d int, clock string) *task.Task {
	return &task.Task{
		ID:       id,
		Name:     "task " + id,
		Time:     period.MustParseClock(clock),
		Date:     day(d),
		Priority: task.PriorityMedium,
		Status:   task.StatusPending,
	}
}

// fakeRepo is an in-memory task.Repository. When err is set every mutating
// call fails with it and leaves the store untouched.
type fakeRepo struct {
	tasks    map[string]*task.Task
	err      error
	fetchErr error
	calls    []string
}

func newFakeRepo(tasks ...*task.Task) *fakeRepo {
	r := &fakeRepo{tasks: make(map[string]*task.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t.Clone()
	}
	return r
}

func (r *fakeRepo) FetchWeekTasks(_ context.Context, start, end time.Time) ([]*task.Task, error) {
	r.calls = append(r.calls, "fetch")
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	var out []*task.Task
	for _, t := range r.tasks {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (r *fakeRepo) GetTask(_ context.Context, id string) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (r *fakeRepo) CreateTask(_ context.Context, t *task.Task) error {
	r.calls = append(r.calls, "create "+t.ID)
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[t.ID]; ok {
		return task.ErrDuplicateTask
	}
	r.tasks[t.ID] = t.Clone()
	return nil
}

func (r *fakeRepo) UpdateTaskPlacement(_ context.Context, id string, p task.Placement) error {
	r.calls = append(r.calls, "place "+id)
	if r.err != nil {
		return r.err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	t, ok := r.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	t.Date = p.Date
	t.Time = p.Time
	return nil
}

func (r *fakeRepo) UpdateTaskFields(_ context.Context, id string, f task.Fields) error {
	r.calls = append(r.calls, "fields "+id)
	if r.err != nil {
		return r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	f.ApplyTo(t)
	return nil
}

func (r *fakeRepo) DeleteTask(_ context.Context, id string) error {
	r.calls = append(r.calls, "delete "+id)
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeRepo) ListAllTasks(context.Context) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *fakeRepo) Close() error { return nil }

func newTestController(t *testing.T, repo *fakeRepo) (*Controller, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	c := NewController(repo, WithNotifier(rec))
	if err := c.Load(context.Background(), monday); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c, rec
}

func cellIDs(c *Controller, d int, p period.Period) []string {
	var ids []string
	for _, t := range c.Cell(d, p) {
		ids = append(ids, t.ID)
	}
	return ids
}

func mustCheck(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Check(); err != nil {
		t.Fatalf("grid invariant broken: %v", err)
	}
}

func equalIDs(a, b []string) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}
