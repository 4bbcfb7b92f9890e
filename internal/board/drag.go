package board

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Drag errors.
var (
	ErrDragActive = errors.New("a drag is already in progress")
	ErrNoDrag     = errors.New("no drag in progress")
	ErrDragState  = errors.New("invalid drag transition")
)

// DefaultDragThreshold is the distance, in host units, a pointer must travel
// before a pressed task detaches from its cell.
const DefaultDragThreshold = 2

// DragState is the lifecycle stage of a drag gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragArmed
	DragDragging
	DragDropped
	DragCancelled
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragArmed:
		return "armed"
	case DragDragging:
		return "dragging"
	case DragDropped:
		return "dropped"
	case DragCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Point is a pointer position in host coordinates.
type Point struct {
	X, Y int
}

// Target is the cell under the pointer. The zero value means no valid cell.
type Target struct {
	Day    int
	Period period.Period
	Valid  bool
}

// CellTarget returns a valid target for a day and period.
func CellTarget(day int, p period.Period) Target {
	return Target{Day: day, Period: p, Valid: day >= 0 && day < task.DaysPerWeek && p.Valid()}
}

// ReleaseKind says what a pointer release turned into.
type ReleaseKind int

const (
	// ReleaseClick means the pointer went up before the drag threshold was crossed.
	ReleaseClick ReleaseKind = iota
	// ReleaseDrop means the task was released over a valid cell.
	ReleaseDrop
	// ReleaseCancel means the task was released over nothing.
	ReleaseCancel
)

// DragSession tracks one drag gesture from press to drop or cancel.
type DragSession struct {
	state      DragState
	taskID     string
	origin     task.Location
	originTime period.Clock
	press      Point
	last       Point
	hover      Target
	threshold  int
}

func newDragSession(taskID string, origin task.Location, originTime period.Clock, press Point, threshold int) *DragSession {
	return &DragSession{
		state:      DragArmed,
		taskID:     taskID,
		origin:     origin,
		originTime: originTime,
		press:      press,
		last:       press,
		hover:      CellTarget(origin.Day, origin.Period),
		threshold:  threshold,
	}
}

// State returns the current state.
func (s *DragSession) State() DragState { return s.state }

// TaskID returns the task being dragged.
func (s *DragSession) TaskID() string { return s.taskID }

// Origin returns where the task was when the gesture started.
func (s *DragSession) Origin() task.Location { return s.origin }

// OriginTime returns the task's time when the gesture started.
func (s *DragSession) OriginTime() period.Clock { return s.originTime }

// Hover returns the current hover target.
func (s *DragSession) Hover() Target { return s.hover }

// Position returns the last known pointer position.
func (s *DragSession) Position() Point { return s.last }

// Active reports whether the session still accepts input.
func (s *DragSession) Active() bool {
	return s.state == DragArmed || s.state == DragDragging
}

// Dragging reports whether the task is detached from its cell.
func (s *DragSession) Dragging() bool {
	return s.state == DragDragging
}

// move handles pointer motion. Crossing the threshold detaches the task.
func (s *DragSession) move(p Point, over Target) error {
	switch s.state {
	case DragArmed:
		s.last = p
		if distance(s.press, p) >= s.threshold {
			s.state = DragDragging
			s.hover = over
		}
		return nil
	case DragDragging:
		s.last = p
		s.hover = over
		return nil
	default:
		return fmt.Errorf("%w: move while %s", ErrDragState, s.state)
	}
}

// lift detaches the task without pointer motion (keyboard pick-up).
func (s *DragSession) lift() error {
	if s.state != DragArmed {
		return fmt.Errorf("%w: lift while %s", ErrDragState, s.state)
	}
	s.state = DragDragging
	return nil
}

// setHover changes the hover target without pointer coordinates.
func (s *DragSession) setHover(over Target) error {
	if s.state != DragDragging {
		return fmt.Errorf("%w: hover while %s", ErrDragState, s.state)
	}
	s.hover = over
	return nil
}

// release ends the gesture.
func (s *DragSession) release(p Point, over Target) (ReleaseKind, error) {
	switch s.state {
	case DragArmed:
		s.last = p
		s.state = DragCancelled
		return ReleaseClick, nil
	case DragDragging:
		s.last = p
		s.hover = over
		if !over.Valid {
			s.state = DragCancelled
			return ReleaseCancel, nil
		}
		s.state = DragDropped
		return ReleaseDrop, nil
	default:
		return 0, fmt.Errorf("%w: release while %s", ErrDragState, s.state)
	}
}

// cancel aborts the gesture.
func (s *DragSession) cancel() error {
	if !s.Active() {
		return fmt.Errorf("%w: cancel while %s", ErrDragState, s.state)
	}
	s.state = DragCancelled
	return nil
}

// distance is the Chebyshev distance, so diagonal motion counts like straight motion.
func distance(a, b Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
