package task

import (
	"fmt"
	"time"

	"github.com/javiermolinar/weekboard/internal/period"
)

// DaysPerWeek is the number of day columns in a Grid.
const DaysPerWeek = 7

// Location identifies a task's cell and its index inside the cell.
type Location struct {
	Day    int // 0=Monday, 6=Sunday
	Period period.Period
	Index  int
}

// Skipped describes a task that could not be placed while building a grid.
type Skipped struct {
	Task   *Task
	Reason string
}

// Grid is the week board: 7 days by 4 periods, each cell an ordered task list.
type Grid struct {
	StartDate time.Time // Monday of the week
	Days      [DaysPerWeek]*Day
}

// NewGrid creates an empty Grid for the week containing date.
func NewGrid(date time.Time) *Grid {
	monday := startOfWeek(date)
	g := &Grid{StartDate: monday}
	for i := range DaysPerWeek {
		g.Days[i] = NewDay(monday.AddDate(0, 0, i))
	}
	return g
}

// NewGridFromTasks creates a Grid and distributes tasks to their cells.
// Tasks outside the week, duplicated or with invalid fields are returned as skipped.
func NewGridFromTasks(date time.Time, tasks []*Task) (*Grid, []Skipped) {
	g := NewGrid(date)
	var skipped []Skipped
	seen := make(map[string]bool, len(tasks))

	for _, t := range tasks {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			skipped = append(skipped, Skipped{Task: t, Reason: err.Error()})
			continue
		}
		if seen[t.ID] {
			skipped = append(skipped, Skipped{Task: t, Reason: ErrDuplicateTask.Error()})
			continue
		}
		day := g.DayIndex(t.Date)
		if day < 0 {
			skipped = append(skipped, Skipped{Task: t, Reason: ErrOutsideWeek.Error()})
			continue
		}
		seen[t.ID] = true
		g.Days[day].insert(t, -1)
	}

	for _, d := range g.Days {
		d.sortCells()
	}
	return g, skipped
}

// Day returns the Day for the given weekday (0=Monday, 6=Sunday).
// Returns nil if weekday is out of range.
func (g *Grid) Day(weekday int) *Day {
	if weekday < 0 || weekday >= DaysPerWeek {
		return nil
	}
	return g.Days[weekday]
}

// DayIndex returns the weekday index of date, or -1 if it is not in this week.
func (g *Grid) DayIndex(date time.Time) int {
	truncated := truncateToDay(date)
	for i, day := range g.Days {
		if sameDay(day.Date, truncated) {
			return i
		}
	}
	return -1
}

// DateOf returns the calendar date of a weekday index.
func (g *Grid) DateOf(weekday int) time.Time {
	return g.StartDate.AddDate(0, 0, weekday)
}

// Contains reports whether date falls inside the week.
func (g *Grid) Contains(date time.Time) bool {
	return g.DayIndex(date) >= 0
}

// EndDate returns the Sunday of the week.
func (g *Grid) EndDate() time.Time {
	return g.StartDate.AddDate(0, 0, DaysPerWeek-1)
}

// Cell returns a copy of the tasks in one cell.
func (g *Grid) Cell(day int, p period.Period) []*Task {
	d := g.Day(day)
	if d == nil {
		return nil
	}
	return d.Cell(p)
}

// Locate returns the location of the task with the given ID.
func (g *Grid) Locate(id string) (Location, bool) {
	for i, d := range g.Days {
		if _, p, idx := d.find(id); idx >= 0 {
			return Location{Day: i, Period: p, Index: idx}, true
		}
	}
	return Location{}, false
}

// Task returns the task with the given ID, or nil.
func (g *Grid) Task(id string) *Task {
	for _, d := range g.Days {
		if t, _, idx := d.find(id); idx >= 0 {
			return t
		}
	}
	return nil
}

// Insert places t in the cell matching its date and period. index selects the
// position inside the cell; a negative or too large index appends.
func (g *Grid) Insert(t *Task, index int) (Location, error) {
	if t == nil {
		return Location{}, fmt.Errorf("inserting nil task")
	}
	if g.Task(t.ID) != nil {
		return Location{}, fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID)
	}
	day := g.DayIndex(t.Date)
	if day < 0 {
		return Location{}, fmt.Errorf("%w: %s", ErrOutsideWeek, t.Date.Format("2006-01-02"))
	}
	idx := g.Days[day].insert(t, index)
	return Location{Day: day, Period: t.Period(), Index: idx}, nil
}

// Remove takes the task with the given ID out of the grid.
func (g *Grid) Remove(id string) (*Task, Location, bool) {
	for i, d := range g.Days {
		if t, p, idx := d.remove(id); t != nil {
			return t, Location{Day: i, Period: p, Index: idx}, true
		}
	}
	return nil, Location{}, false
}

// AllTasks returns all tasks, ordered by day, period and cell position.
func (g *Grid) AllTasks() []*Task {
	var result []*Task
	for _, d := range g.Days {
		result = append(result, d.Tasks()...)
	}
	return result
}

// Len returns the number of tasks on the board.
func (g *Grid) Len() int {
	n := 0
	for _, d := range g.Days {
		n += d.Len()
	}
	return n
}

// Check verifies that every task sits in exactly one cell whose day and period
// match the task's date and time.
func (g *Grid) Check() error {
	seen := make(map[string]Location)
	for i, d := range g.Days {
		if !sameDay(d.Date, g.DateOf(i)) {
			return fmt.Errorf("day %d has date %s, want %s", i, d.Date.Format("2006-01-02"), g.DateOf(i).Format("2006-01-02"))
		}
		for _, p := range period.All() {
			for idx, t := range d.cells[p] {
				here := Location{Day: i, Period: p, Index: idx}
				if prev, dup := seen[t.ID]; dup {
					return fmt.Errorf("task %s in two cells: %+v and %+v", t.ID, prev, here)
				}
				seen[t.ID] = here
				if !sameDay(t.Date, d.Date) {
					return fmt.Errorf("task %s dated %s sits on %s", t.ID, t.Date.Format("2006-01-02"), d.Date.Format("2006-01-02"))
				}
				if t.Period() != p {
					return fmt.Errorf("task %s at %s sits in %s cell", t.ID, t.Time, p)
				}
			}
		}
	}
	return nil
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// StartOfWeek returns the Monday of the week containing the given date.
func StartOfWeek(t time.Time) time.Time {
	return startOfWeek(t)
}

func startOfWeek(t time.Time) time.Time {
	t = truncateToDay(t)
	weekday := int(t.Weekday())
	// Convert Sunday (0) to 7 for easier calculation
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
