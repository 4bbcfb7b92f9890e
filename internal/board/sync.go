package board

import (
	"context"
	"fmt"

	"github.com/javiermolinar/weekboard/internal/task"
)

// Op is the kind of mutation a Pending persists.
type Op int

const (
	OpMove Op = iota
	OpToggle
	OpEdit
	OpCreate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpToggle:
		return "toggle"
	case OpEdit:
		return "edit"
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Pending is an optimistic mutation already visible on the board and not yet
// confirmed by the store. Run only touches the repository and immutable copies,
// so it may execute off the event loop.
type Pending struct {
	seq        uint64
	generation uint64
	op         Op
	repo       task.Repository

	snapshot    Snapshot
	after       task.Task
	afterInGrid bool

	placement  task.Placement
	resolution Resolution
	fields     task.Fields
	created    task.Task
}

// Seq returns the pending's sequence number, unique per controller.
func (p *Pending) Seq() uint64 { return p.seq }

// Op returns the mutation kind.
func (p *Pending) Op() Op { return p.op }

// TaskID returns the affected task.
func (p *Pending) TaskID() string { return p.snapshot.Task.ID }

// Snapshot returns the state the task had before the mutation.
func (p *Pending) Snapshot() Snapshot { return p.snapshot }

// After returns the task value the board shows while the mutation is pending.
func (p *Pending) After() task.Task { return p.after }

// Resolution returns the validated period and time of a move.
func (p *Pending) Resolution() Resolution { return p.resolution }

// Run persists the mutation. It never touches the grid.
func (p *Pending) Run(ctx context.Context) Result {
	var err error
	switch p.op {
	case OpMove:
		err = p.repo.UpdateTaskPlacement(ctx, p.TaskID(), p.placement)
	case OpToggle, OpEdit:
		err = p.repo.UpdateTaskFields(ctx, p.TaskID(), p.fields)
	case OpCreate:
		created := p.created
		err = p.repo.CreateTask(ctx, &created)
	case OpDelete:
		err = p.repo.DeleteTask(ctx, p.TaskID())
	default:
		err = fmt.Errorf("unknown op %s", p.op)
	}
	if err != nil {
		err = fmt.Errorf("%s %s: %w", p.op, p.TaskID(), err)
	}
	return Result{Pending: p, Err: err}
}

// Result is the store's answer to a Pending.
type Result struct {
	Pending *Pending
	Err     error
}
