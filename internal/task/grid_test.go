package task

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/weekboard/internal/period"
)

// Wednesday, January 15, 2025
var testWeek = time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)

func newTask(id, date, clock string) *Task {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return &Task{
		ID:       id,
		Name:     "task " + id,
		Time:     period.MustParseClock(clock),
		Date:     d,
		Priority: PriorityMedium,
		Status:   StatusPending,
	}
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(time.Date(2025, 1, 15, 14, 30, 0, 0, time.Local))

	expectedMonday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	if !g.StartDate.Equal(expectedMonday) {
		t.Errorf("expected StartDate %v, got %v", expectedMonday, g.StartDate)
	}
	for i := 0; i < 7; i++ {
		if g.Days[i] == nil {
			t.Fatalf("day %d is nil", i)
		}
		if !g.Days[i].Date.Equal(expectedMonday.AddDate(0, 0, i)) {
			t.Errorf("day %d: got %v", i, g.Days[i].Date)
		}
	}
	if !g.EndDate().Equal(time.Date(2025, 1, 19, 0, 0, 0, 0, time.Local)) {
		t.Errorf("unexpected EndDate %v", g.EndDate())
	}
}

func TestNewGrid_Sunday(t *testing.T) {
	g := NewGrid(time.Date(2025, 1, 19, 0, 0, 0, 0, time.Local))
	expectedMonday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	if !g.StartDate.Equal(expectedMonday) {
		t.Errorf("expected StartDate %v, got %v", expectedMonday, g.StartDate)
	}
}

func TestNewGridFromTasks(t *testing.T) {
	tasks := []*Task{
		newTask("a", "2025-01-13", "09:00"),
		newTask("b", "2025-01-13", "08:00"),
		newTask("c", "2025-01-15", "14:00"),
		newTask("d", "2025-01-19", "23:30"),
		newTask("out", "2025-01-20", "09:00"),
		newTask("a", "2025-01-14", "09:00"),
		{ID: "bad", Time: period.MustParseClock("09:00"), Date: testWeek, Status: StatusPending},
	}

	g, skipped := NewGridFromTasks(testWeek, tasks)

	if g.Len() != 4 {
		t.Errorf("expected 4 tasks on the board, got %d", g.Len())
	}
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped, got %d: %+v", len(skipped), skipped)
	}

	morning := g.Cell(0, period.Morning)
	if len(morning) != 2 || morning[0].ID != "b" || morning[1].ID != "a" {
		t.Errorf("monday morning should be sorted by time, got %v", ids(morning))
	}
	if cell := g.Cell(2, period.Afternoon); len(cell) != 1 || cell[0].ID != "c" {
		t.Errorf("wednesday afternoon = %v", ids(cell))
	}
	if cell := g.Cell(6, period.Evening); len(cell) != 1 || cell[0].ID != "d" {
		t.Errorf("sunday evening = %v", ids(cell))
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestGrid_InsertRemoveLocate(t *testing.T) {
	g := NewGrid(testWeek)

	a := newTask("a", "2025-01-14", "10:00")
	b := newTask("b", "2025-01-14", "07:00")
	c := newTask("c", "2025-01-14", "11:00")

	for _, tsk := range []*Task{a, b} {
		if _, err := g.Insert(tsk, -1); err != nil {
			t.Fatalf("Insert(%s): %v", tsk.ID, err)
		}
	}
	loc, err := g.Insert(c, 0)
	if err != nil {
		t.Fatalf("Insert(c): %v", err)
	}
	if loc != (Location{Day: 1, Period: period.Morning, Index: 0}) {
		t.Errorf("unexpected location %+v", loc)
	}
	if got := ids(g.Cell(1, period.Morning)); got != "c,a,b" {
		t.Errorf("cell order = %s, want c,a,b", got)
	}

	if _, err := g.Insert(a.Clone(), -1); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("duplicate insert: got %v", err)
	}
	if _, err := g.Insert(newTask("x", "2025-02-01", "09:00"), -1); !errors.Is(err, ErrOutsideWeek) {
		t.Errorf("outside week insert: got %v", err)
	}

	removed, from, ok := g.Remove("a")
	if !ok || removed != a {
		t.Fatalf("Remove(a) = %v, %v", removed, ok)
	}
	if from.Index != 1 {
		t.Errorf("removed from index %d, want 1", from.Index)
	}
	if _, found := g.Locate("a"); found {
		t.Error("a should be gone")
	}
	if g.Task("b") != b {
		t.Error("Task(b) lookup failed")
	}
	if _, _, ok := g.Remove("missing"); ok {
		t.Error("removing a missing task should report false")
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestGrid_CheckDetectsDrift(t *testing.T) {
	g := NewGrid(testWeek)
	tsk := newTask("a", "2025-01-14", "09:00")
	if _, err := g.Insert(tsk, -1); err != nil {
		t.Fatal(err)
	}

	// Changing the time behind the grid's back breaks the cell invariant.
	tsk.Time = period.MustParseClock("15:00")
	if err := g.Check(); err == nil {
		t.Error("expected Check to report period drift")
	}
}

func TestDay_Stats(t *testing.T) {
	g := NewGrid(testWeek)
	a := newTask("a", "2025-01-14", "09:00")
	b := newTask("b", "2025-01-14", "19:00")
	b.Status = StatusCompleted
	_, _ = g.Insert(a, -1)
	_, _ = g.Insert(b, -1)

	stats := g.Day(1).Stats()
	if stats.Total != 2 || stats.Completed != 1 || stats.Pending() != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestWeekdayName(t *testing.T) {
	if WeekdayName(0) != "Monday" || WeekdayShortName(6) != "Sun" {
		t.Error("unexpected weekday names")
	}
	if WeekdayName(7) != "" || WeekdayShortName(-1) != "" {
		t.Error("out of range weekday should be empty")
	}
}

func ids(tasks []*Task) string {
	s := ""
	for i, t := range tasks {
		if i > 0 {
			s += ","
		}
		s += t.ID
	}
	return s
}
