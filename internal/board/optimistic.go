package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Snapshot is the pre-mutation state of one task: its value and, when it was on
// the board, the exact cell and index it occupied.
type Snapshot struct {
	Task     task.Task
	Location task.Location
	InGrid   bool
}

// Updater applies local mutations to a grid and can undo them from a Snapshot.
type Updater struct {
	grid *task.Grid
}

// NewUpdater returns an Updater working on g.
func NewUpdater(g *task.Grid) *Updater {
	return &Updater{grid: g}
}

func (u *Updater) snapshot(id string) (*task.Task, Snapshot, error) {
	t := u.grid.Task(id)
	if t == nil {
		return nil, Snapshot{}, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	loc, _ := u.grid.Locate(id)
	return t, Snapshot{Task: *t, Location: loc, InGrid: true}, nil
}

// Apply moves a task to date at the given time. The task leaves its cell and is
// appended to the destination cell, or leaves the board when date is outside the week.
func (u *Updater) Apply(id string, date time.Time, at period.Clock) (Snapshot, error) {
	t, snap, err := u.snapshot(id)
	if err != nil {
		return Snapshot{}, err
	}
	u.grid.Remove(id)
	t.Date = date
	t.Time = at
	if u.grid.Contains(date) {
		if _, err := u.grid.Insert(t, -1); err != nil {
			return Snapshot{}, errors.Join(err, u.Restore(snap))
		}
	}
	return snap, nil
}

// ApplyFields applies a partial update. A task whose period is unchanged keeps
// its index; one whose time crossed into another period is appended there.
func (u *Updater) ApplyFields(id string, f task.Fields) (Snapshot, error) {
	t, snap, err := u.snapshot(id)
	if err != nil {
		return Snapshot{}, err
	}
	u.grid.Remove(id)
	f.ApplyTo(t)
	index := -1
	if t.Period() == snap.Location.Period {
		index = snap.Location.Index
	}
	if _, err := u.grid.Insert(t, index); err != nil {
		return Snapshot{}, errors.Join(err, u.Restore(snap))
	}
	return snap, nil
}

// Insert adds a new task. The snapshot records that it was absent. A task dated
// outside the week is accepted but not shown.
func (u *Updater) Insert(t *task.Task) (Snapshot, error) {
	if u.grid.Task(t.ID) != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", task.ErrDuplicateTask, t.ID)
	}
	snap := Snapshot{Task: *t}
	if u.grid.Contains(t.Date) {
		if _, err := u.grid.Insert(t, -1); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// Remove takes a task off the board.
func (u *Updater) Remove(id string) (Snapshot, error) {
	_, snap, err := u.snapshot(id)
	if err != nil {
		return Snapshot{}, err
	}
	u.grid.Remove(id)
	return snap, nil
}

// Restore puts the task back exactly as snap recorded it: same value, same cell,
// same index. A snapshot of an absent task removes it. It fails only when the
// snapshot does not belong to this grid's week, leaving the task off the board.
func (u *Updater) Restore(snap Snapshot) error {
	t, _, found := u.grid.Remove(snap.Task.ID)
	if !snap.InGrid {
		return nil
	}
	if !found {
		t = new(task.Task)
	}
	*t = snap.Task
	if _, err := u.grid.Insert(t, snap.Location.Index); err != nil {
		return fmt.Errorf("restoring %s: %w", snap.Task.ID, err)
	}
	return nil
}
