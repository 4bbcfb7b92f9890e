package tui

import (
	"testing"

	"github.com/javiermolinar/weekboard/internal/task"
)

func TestFormatAgenda(t *testing.T) {
	gym := *mkTask("a", 0, "19:00")
	gym.Name = "Gym"
	gym.Icon = "🏋"

	rent := *mkTask("b", 0, "09:30")
	rent.Name = "Pay rent"
	rent.Priority = task.PriorityHigh

	report := *mkTask("c", 4, "05:00")
	report.Name = "Report"
	report.Status = task.StatusCompleted

	outside := *mkTask("d", 8, "09:00")

	got := FormatAgenda(monday, []task.Task{gym, report, rent, outside})
	want := "Week of 2025-01-13 – 2025-01-19\n" +
		"\nMonday 2025-01-13\n" +
		"  Morning\n" +
		"    [ ] 09:30 Pay rent (high)\n" +
		"  Evening\n" +
		"    [ ] 19:00 🏋 Gym\n" +
		"\nFriday 2025-01-17\n" +
		"  Dawn\n" +
		"    [x] 05:00 Report\n"
	if got != want {
		t.Fatalf("agenda mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatAgendaEmpty(t *testing.T) {
	got := FormatAgenda(monday, nil)
	want := "Week of 2025-01-13 – 2025-01-19\n\nNo tasks.\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
