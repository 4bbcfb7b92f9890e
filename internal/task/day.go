package task

import (
	"slices"
	"time"

	"github.com/javiermolinar/weekboard/internal/period"
)

// Day holds the tasks for a single date, split into one ordered cell per period.
type Day struct {
	Date  time.Time
	cells [period.Count][]*Task
}

// NewDay creates a Day for the given date.
func NewDay(date time.Time) *Day {
	return &Day{Date: truncateToDay(date)}
}

// Cell returns a copy of the task list for a period.
func (d *Day) Cell(p period.Period) []*Task {
	if !p.Valid() {
		return nil
	}
	result := make([]*Task, len(d.cells[p]))
	copy(result, d.cells[p])
	return result
}

// Tasks returns all tasks of the day, in period order then cell order.
func (d *Day) Tasks() []*Task {
	var result []*Task
	for _, p := range period.All() {
		result = append(result, d.cells[p]...)
	}
	return result
}

// Len returns the number of tasks in the day.
func (d *Day) Len() int {
	n := 0
	for _, c := range d.cells {
		n += len(c)
	}
	return n
}

// insert places t into its period cell at index, or appends when index is out of range.
func (d *Day) insert(t *Task, index int) int {
	p := t.Period()
	cell := d.cells[p]
	if index < 0 || index > len(cell) {
		index = len(cell)
	}
	d.cells[p] = slices.Insert(cell, index, t)
	return index
}

// remove removes a task by ID and reports where it was.
func (d *Day) remove(id string) (*Task, period.Period, int) {
	for _, p := range period.All() {
		for i, t := range d.cells[p] {
			if t.ID == id {
				d.cells[p] = slices.Delete(d.cells[p], i, i+1)
				return t, p, i
			}
		}
	}
	return nil, 0, -1
}

// find returns the task with the given ID and its position.
func (d *Day) find(id string) (*Task, period.Period, int) {
	for _, p := range period.All() {
		for i, t := range d.cells[p] {
			if t.ID == id {
				return t, p, i
			}
		}
	}
	return nil, 0, -1
}

// sortCells orders every cell by time, then by descending priority, then by name.
func (d *Day) sortCells() {
	for _, p := range period.All() {
		slices.SortStableFunc(d.cells[p], compareTasks)
	}
}

func compareTasks(a, b *Task) int {
	if a.Time != b.Time {
		return int(a.Time) - int(b.Time)
	}
	if a.Priority != b.Priority {
		return int(b.Priority) - int(a.Priority)
	}
	switch {
	case a.Name < b.Name:
		return -1
	case a.Name > b.Name:
		return 1
	default:
		return 0
	}
}

// DayStats holds completion counts for a single day.
type DayStats struct {
	Total     int
	Completed int
}

// Pending returns the number of tasks not yet completed.
func (s DayStats) Pending() int {
	return s.Total - s.Completed
}

// Stats calculates statistics for the day.
func (d *Day) Stats() DayStats {
	var stats DayStats
	for _, t := range d.Tasks() {
		stats.Total++
		if t.IsCompleted() {
			stats.Completed++
		}
	}
	return stats
}

// truncateToDay removes the time component from a time.Time.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
