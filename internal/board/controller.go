package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// ErrInvalidTarget is returned when a drop lands outside the grid.
var ErrInvalidTarget = errors.New("drop target is not a board cell")

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier sets where user-facing notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithDragThreshold sets the pointer distance that turns a press into a drag.
func WithDragThreshold(units int) Option {
	return func(c *Controller) {
		if units >= 0 {
			c.threshold = units
		}
	}
}

// Controller owns the week grid and is the only thing that mutates it.
// It is not safe for concurrent use: call it from one event loop and run
// Pending.Run elsewhere if persistence must not block.
type Controller struct {
	repo      task.Repository
	grid      *task.Grid
	updater   *Updater
	notifier  notify.Notifier
	logger    *slog.Logger
	threshold int

	drag       *DragSession
	pending    map[uint64]*Pending
	seq        uint64
	generation uint64
}

// NewController returns a controller showing an empty current week.
func NewController(repo task.Repository, opts ...Option) *Controller {
	grid := task.NewGrid(time.Now())
	c := &Controller{
		repo:      repo,
		grid:      grid,
		updater:   NewUpdater(grid),
		notifier:  notify.Discard,
		logger:    logging.Discard(),
		threshold: DefaultDragThreshold,
		pending:   make(map[uint64]*Pending),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchWeek reads the tasks of the week containing weekOf and returns its Monday.
func FetchWeek(ctx context.Context, repo task.Repository, weekOf time.Time) (time.Time, []*task.Task, error) {
	start := task.StartOfWeek(weekOf)
	end := start.AddDate(0, 0, task.DaysPerWeek-1)
	tasks, err := repo.FetchWeekTasks(ctx, start, end)
	if err != nil {
		return start, nil, fmt.Errorf("loading week of %s: %w", dateutil.Format(start), err)
	}
	return start, tasks, nil
}

// Load fetches the week containing weekOf and replaces the grid with it.
func (c *Controller) Load(ctx context.Context, weekOf time.Time) error {
	start, tasks, err := FetchWeek(ctx, c.repo, weekOf)
	if err != nil {
		return err
	}
	c.Replace(start, tasks)
	return nil
}

// Reload fetches the displayed week again.
func (c *Controller) Reload(ctx context.Context) error {
	return c.Load(ctx, c.grid.StartDate)
}

// Replace swaps the grid for one built from tasks. Tasks that cannot be placed
// are logged and dropped. Pending mutations issued before the swap no longer
// roll back.
func (c *Controller) Replace(weekOf time.Time, tasks []*task.Task) {
	grid, skipped := task.NewGridFromTasks(weekOf, tasks)
	for _, s := range skipped {
		c.logger.Warn("skipping task", "id", s.Task.ID, "name", s.Task.Name, "reason", s.Reason)
	}
	c.grid = grid
	c.updater = NewUpdater(grid)
	c.generation++

	if c.drag != nil && grid.Task(c.drag.TaskID()) == nil {
		c.logger.Debug("drag cancelled by reload", "id", c.drag.TaskID())
		_ = c.drag.cancel()
		c.drag = nil
	}
}

// WeekStart returns the Monday of the displayed week.
func (c *Controller) WeekStart() time.Time { return c.grid.StartDate }

// DateOf returns the date of a day column.
func (c *Controller) DateOf(day int) time.Time { return c.grid.DateOf(day) }

// Cell returns copies of the tasks in one cell, in display order.
func (c *Controller) Cell(day int, p period.Period) []task.Task {
	cell := c.grid.Cell(day, p)
	out := make([]task.Task, len(cell))
	for i, t := range cell {
		out[i] = *t
	}
	return out
}

// Tasks returns copies of every task on the board.
func (c *Controller) Tasks() []task.Task {
	all := c.grid.AllTasks()
	out := make([]task.Task, len(all))
	for i, t := range all {
		out[i] = *t
	}
	return out
}

// Task returns a copy of the task with the given ID.
func (c *Controller) Task(id string) (task.Task, bool) {
	t := c.grid.Task(id)
	if t == nil {
		return task.Task{}, false
	}
	return *t, true
}

// Locate returns where a task sits.
func (c *Controller) Locate(id string) (task.Location, bool) {
	return c.grid.Locate(id)
}

// DayStats returns completion counts for a day column.
func (c *Controller) DayStats(day int) task.DayStats {
	d := c.grid.Day(day)
	if d == nil {
		return task.DayStats{}
	}
	return d.Stats()
}

// Check verifies the grid invariants.
func (c *Controller) Check() error { return c.grid.Check() }

// InFlight returns the number of mutations awaiting the store.
func (c *Controller) InFlight() int { return len(c.pending) }

// Drag returns the active drag session, or nil.
func (c *Controller) Drag() *DragSession { return c.drag }

// BeginDrag arms a drag on a task. Only one drag may be active.
func (c *Controller) BeginDrag(id string, at Point) error {
	if c.drag != nil && c.drag.Active() {
		return ErrDragActive
	}
	t := c.grid.Task(id)
	if t == nil {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	loc, _ := c.grid.Locate(id)
	c.drag = newDragSession(id, loc, t.Time, at, c.threshold)
	c.logger.Debug("drag armed", "id", id, "day", loc.Day, "period", loc.Period)
	return nil
}

// DragMove feeds pointer motion to the active drag.
func (c *Controller) DragMove(at Point, over Target) error {
	if c.drag == nil {
		return ErrNoDrag
	}
	wasDragging := c.drag.Dragging()
	if err := c.drag.move(at, over); err != nil {
		return err
	}
	if !wasDragging && c.drag.Dragging() {
		c.logger.Debug("drag started", "id", c.drag.TaskID())
	}
	return nil
}

// Lift detaches an armed task without pointer motion.
func (c *Controller) Lift() error {
	if c.drag == nil {
		return ErrNoDrag
	}
	return c.drag.lift()
}

// DragHover changes the hover target of a lifted task.
func (c *Controller) DragHover(over Target) error {
	if c.drag == nil {
		return ErrNoDrag
	}
	return c.drag.setHover(over)
}

// Release is the outcome of ending a drag.
type Release struct {
	Kind    ReleaseKind
	TaskID  string
	Pending *Pending // set only when Kind is ReleaseDrop and the cell changed
}

// EndDrag releases the pointer. A release over a valid cell becomes a move.
func (c *Controller) EndDrag(at Point, over Target) (Release, error) {
	if c.drag == nil {
		return Release{}, ErrNoDrag
	}
	s := c.drag
	kind, err := s.release(at, over)
	if err != nil {
		return Release{}, err
	}
	c.drag = nil

	rel := Release{Kind: kind, TaskID: s.TaskID()}
	if kind != ReleaseDrop {
		c.logger.Debug("drag ended without drop", "id", s.TaskID(), "kind", kind)
		return rel, nil
	}
	p, err := c.Drop(s.TaskID(), over)
	rel.Pending = p
	return rel, err
}

// dragHolds reports whether an armed or dragging session owns task id.
// Mutations on that task wait until the drag is released or cancelled.
func (c *Controller) dragHolds(id string) bool {
	return c.drag != nil && c.drag.Active() && c.drag.TaskID() == id
}

// CancelDrag aborts the active drag, if any. The grid is untouched.
func (c *Controller) CancelDrag() {
	if c.drag == nil {
		return
	}
	_ = c.drag.cancel()
	c.logger.Debug("drag cancelled", "id", c.drag.TaskID())
	c.drag = nil
}

// Drop moves a task to a board cell.
func (c *Controller) Drop(id string, target Target) (*Pending, error) {
	if !target.Valid {
		return nil, ErrInvalidTarget
	}
	return c.Move(id, c.grid.DateOf(target.Day), target.Period)
}

// Move places a task on date in period dest, keeping its time when it already
// belongs to dest and using dest's default time otherwise. Moving to the cell
// the task already occupies does nothing and returns a nil Pending. A date
// outside the displayed week takes the task off the board.
func (c *Controller) Move(id string, date time.Time, dest period.Period) (*Pending, error) {
	if !dest.Valid() {
		return nil, fmt.Errorf("invalid period %d", int(dest))
	}
	if c.dragHolds(id) {
		return nil, fmt.Errorf("%w: %s", ErrDragActive, id)
	}
	t := c.grid.Task(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	date = dateutil.TruncateToDay(date)
	if dateutil.SameDay(t.Date, date) && t.Period() == dest {
		return nil, nil
	}

	res := Validate(*t, c.grid.DayIndex(date), dest)
	snap, err := c.updater.Apply(id, date, res.Time)
	if err != nil {
		return nil, err
	}
	p := c.newPending(OpMove, snap)
	p.placement = task.Placement{Date: date, Period: res.Period, Time: res.Time}
	p.resolution = res
	c.logger.Debug("move applied",
		"id", id,
		"date", dateutil.Format(date),
		"period", res.Period.String(),
		"time", res.Time.String(),
		"adjusted", res.WasAdjusted,
	)
	return p, nil
}

// ToggleComplete flips a task between pending and completed.
func (c *Controller) ToggleComplete(id string) (*Pending, error) {
	if c.dragHolds(id) {
		return nil, fmt.Errorf("%w: %s", ErrDragActive, id)
	}
	t := c.grid.Task(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	status := t.Status.Toggled()
	f := task.Fields{Status: &status}
	snap, err := c.updater.ApplyFields(id, f)
	if err != nil {
		return nil, err
	}
	p := c.newPending(OpToggle, snap)
	p.fields = f.Clone()
	return p, nil
}

// Edit applies a partial update. A time change that crosses a period boundary
// moves the task to the matching cell of the same day.
func (c *Controller) Edit(id string, f task.Fields) (*Pending, error) {
	if c.dragHolds(id) {
		return nil, fmt.Errorf("%w: %s", ErrDragActive, id)
	}
	if f.IsEmpty() {
		return nil, nil
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f = f.Clone()
	snap, err := c.updater.ApplyFields(id, f)
	if err != nil {
		return nil, err
	}
	p := c.newPending(OpEdit, snap)
	p.fields = f
	return p, nil
}

// Create adds a task. A task dated outside the displayed week is persisted but
// not shown.
func (c *Controller) Create(t *task.Task) (*Pending, error) {
	if t == nil {
		return nil, errors.New("creating nil task")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	created := t.Clone()
	created.Date = dateutil.TruncateToDay(created.Date)
	snap, err := c.updater.Insert(created)
	if err != nil {
		return nil, err
	}
	p := c.newPending(OpCreate, snap)
	p.created = *created
	p.after = *created
	return p, nil
}

// Delete removes a task.
func (c *Controller) Delete(id string) (*Pending, error) {
	if c.dragHolds(id) {
		return nil, fmt.Errorf("%w: %s", ErrDragActive, id)
	}
	snap, err := c.updater.Remove(id)
	if err != nil {
		return nil, err
	}
	return c.newPending(OpDelete, snap), nil
}

func (c *Controller) newPending(op Op, snap Snapshot) *Pending {
	c.seq++
	p := &Pending{
		seq:        c.seq,
		generation: c.generation,
		op:         op,
		repo:       c.repo,
		snapshot:   snap,
		after:      snap.Task,
	}
	if t := c.grid.Task(snap.Task.ID); t != nil {
		p.after = *t
		p.afterInGrid = true
	}
	c.pending[p.seq] = p
	return p
}

// Settle applies the store's answer to a pending mutation and reports whether
// the displayed week should be fetched again.
//
// On failure the task is restored from its snapshot only when the board still
// shows exactly what the mutation produced. If something else touched the task
// since, or the grid was reloaded, the rollback is skipped and a refetch is
// requested instead.
func (c *Controller) Settle(res Result) bool {
	p := res.Pending
	if p == nil {
		return false
	}
	if _, ok := c.pending[p.seq]; !ok {
		c.logger.Debug("ignoring settled result", "seq", p.seq, "op", p.op.String())
		return false
	}
	delete(c.pending, p.seq)

	if res.Err == nil {
		c.logger.Debug("sync confirmed", "op", p.op.String(), "id", p.TaskID())
		c.notifySuccess(p)
		return p.generation != c.generation
	}

	c.logger.Warn("sync failed", "op", p.op.String(), "id", p.TaskID(), "error", res.Err)
	if c.canRestore(p) {
		if err := c.updater.Restore(p.snapshot); err != nil {
			c.logger.Warn("rollback failed", "op", p.op.String(), "id", p.TaskID(), "error", err)
		} else {
			c.logger.Debug("rolled back", "op", p.op.String(), "id", p.TaskID())
		}
	} else {
		c.logger.Info("stale rollback skipped", "op", p.op.String(), "id", p.TaskID())
	}
	c.notifier.Emit(notify.Error, failureMessage(p, res.Err))
	return true
}

// Commit runs a pending mutation synchronously and settles it, reloading the
// week when Settle asks for it. A nil Pending is a no-op.
func (c *Controller) Commit(ctx context.Context, p *Pending) error {
	if p == nil {
		return nil
	}
	res := p.Run(ctx)
	if c.Settle(res) {
		if err := c.Reload(ctx); err != nil {
			c.logger.Warn("reload failed", "error", err)
			c.notifier.Emit(notify.Error, fmt.Sprintf("Could not reload the week: %v", err))
		}
	}
	return res.Err
}

func (c *Controller) canRestore(p *Pending) bool {
	if p.generation != c.generation {
		return false
	}
	cur := c.grid.Task(p.TaskID())
	if !p.afterInGrid {
		return cur == nil
	}
	return cur != nil && cur.Equal(&p.after)
}

func (c *Controller) notifySuccess(p *Pending) {
	name := p.after.Name
	switch p.op {
	case OpMove:
		if p.resolution.WasAdjusted {
			c.notifier.Emit(notify.Info, fmt.Sprintf("%q moved to %s %s, time adjusted from %s to %s",
				name,
				p.placement.Date.Format("Mon"),
				p.resolution.Period.Title(),
				p.snapshot.Task.Time,
				p.resolution.Time,
			))
		}
	case OpEdit:
		c.notifier.Emit(notify.Success, fmt.Sprintf("Saved %q", name))
	case OpCreate:
		c.notifier.Emit(notify.Success, fmt.Sprintf("Added %q", name))
	case OpDelete:
		c.notifier.Emit(notify.Success, fmt.Sprintf("Deleted %q", name))
	}
}

func failureMessage(p *Pending, err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		err = cause
	}
	name := p.snapshot.Task.Name
	switch p.op {
	case OpMove:
		return fmt.Sprintf("Could not move %q: %v", name, err)
	case OpToggle:
		return fmt.Sprintf("Could not update %q: %v", name, err)
	case OpEdit:
		return fmt.Sprintf("Could not save %q: %v", name, err)
	case OpCreate:
		return fmt.Sprintf("Could not add %q: %v", name, err)
	case OpDelete:
		return fmt.Sprintf("Could not delete %q: %v", name, err)
	default:
		return fmt.Sprintf("Could not sync %q: %v", name, err)
	}
}
