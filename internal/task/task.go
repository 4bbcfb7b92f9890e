// Package task defines the core domain types for weekboard.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
)

// Validation errors.
var (
	ErrEmptyID         = errors.New("id cannot be empty")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high, extreme")
	ErrInvalidStatus   = errors.New("status must be 'pending' or 'completed'")
)

// Domain errors.
var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrDuplicateTask  = errors.New("task already exists")
	ErrPeriodMismatch = errors.New("period does not match time")
	ErrOutsideWeek    = errors.New("date is outside the displayed week")
)

// Priority is an ordered urgency level. Higher values are more urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityExtreme
)

var priorityNames = [...]string{"low", "medium", "high", "extreme"}

// Priorities returns all priorities from least to most urgent.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityExtreme}
}

// Valid returns true if the priority is a known level.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityExtreme
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Next cycles to the next priority, wrapping from extreme to low.
func (p Priority) Next() Priority {
	return (p + 1) % Priority(len(priorityNames))
}

// Prev cycles to the previous priority, wrapping from low to extreme.
func (p Priority) Prev() Priority {
	if p <= PriorityLow {
		return PriorityExtreme
	}
	return p - 1
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range priorityNames {
		if n == s {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, ErrInvalidPriority
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task is a single item on the board.
type Task struct {
	ID        string
	Name      string
	Icon      string
	Time      period.Clock
	Date      time.Time // midnight, local
	Priority  Priority
	Status    Status
	CreatedAt time.Time
}

// New creates a new pending Task with a fresh ID.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// clock must be in HH:MM format. priority can be empty (defaults to medium).
func New(name, icon, date, clock, priority string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	scheduledDate, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	c, err := period.ParseClock(clock)
	if err != nil {
		return nil, err
	}

	prio := PriorityMedium
	if priority != "" {
		if prio, err = ParsePriority(priority); err != nil {
			return nil, err
		}
	}

	return &Task{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      strings.TrimSpace(icon),
		Time:      c,
		Date:      scheduledDate,
		Priority:  prio,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// Period returns the period the task's time falls in. It is always derived from Time.
func (t *Task) Period() period.Period {
	return period.Classify(t.Time)
}

// IsCompleted returns true if the task is completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Placement returns the task's current placement.
func (t *Task) Placement() Placement {
	return Placement{Date: t.Date, Period: t.Period(), Time: t.Time}
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Equal reports whether two tasks hold the same values.
func (t *Task) Equal(o *Task) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.ID == o.ID &&
		t.Name == o.Name &&
		t.Icon == o.Icon &&
		t.Time == o.Time &&
		sameDay(t.Date, o.Date) &&
		t.Priority == o.Priority &&
		t.Status == o.Status
}

// Validate checks the task fields that every store requires.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.Date.IsZero() {
		return dateutil.ErrInvalidDateFormat
	}
	return nil
}

// Placement is where a task sits on the board: a calendar day, a period and a time.
type Placement struct {
	Date   time.Time
	Period period.Period
	Time   period.Clock
}

// Validate checks that the period agrees with the time.
func (p Placement) Validate() error {
	if p.Date.IsZero() {
		return dateutil.ErrInvalidDateFormat
	}
	if !p.Period.Valid() {
		return fmt.Errorf("%w: %d", period.ErrInvalidPeriod, int(p.Period))
	}
	if got := period.Classify(p.Time); got != p.Period {
		return fmt.Errorf("%w: %s is %s, not %s", ErrPeriodMismatch, p.Time, got, p.Period)
	}
	return nil
}

// Fields is a partial update. Nil fields are left unchanged.
type Fields struct {
	Name     *string
	Icon     *string
	Time     *period.Clock
	Priority *Priority
	Status   *Status
}

// IsEmpty returns true if no field is set.
func (f Fields) IsEmpty() bool {
	return f.Name == nil && f.Icon == nil && f.Time == nil && f.Priority == nil && f.Status == nil
}

// Clone returns a copy of f that shares no pointers with it.
func (f Fields) Clone() Fields {
	var c Fields
	if f.Name != nil {
		c.Name = ptr(*f.Name)
	}
	if f.Icon != nil {
		c.Icon = ptr(*f.Icon)
	}
	if f.Time != nil {
		c.Time = ptr(*f.Time)
	}
	if f.Priority != nil {
		c.Priority = ptr(*f.Priority)
	}
	if f.Status != nil {
		c.Status = ptr(*f.Status)
	}
	return c
}

func ptr[T any](v T) *T { return &v }

// Validate checks the set fields.
func (f Fields) Validate() error {
	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		return ErrEmptyName
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return ErrInvalidPriority
	}
	if f.Status != nil && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// ApplyTo writes the set fields onto t.
func (f Fields) ApplyTo(t *Task) {
	if f.Name != nil {
		t.Name = strings.TrimSpace(*f.Name)
	}
	if f.Icon != nil {
		t.Icon = strings.TrimSpace(*f.Icon)
	}
	if f.Time != nil {
		t.Time = *f.Time
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Status != nil {
		t.Status = *f.Status
	}
}
