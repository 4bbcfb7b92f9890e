package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// FormatAgenda renders a week's tasks as plain text, day by day, for the clipboard.
func FormatAgenda(weekStart time.Time, tasks []task.Task) string {
	var days [task.DaysPerWeek][]task.Task
	for _, t := range tasks {
		i := int(dateutil.TruncateToDay(t.Date).Sub(weekStart).Hours()+12) / 24
		if i < 0 || i >= task.DaysPerWeek {
			continue
		}
		days[i] = append(days[i], t)
	}

	var b strings.Builder
	end := weekStart.AddDate(0, 0, task.DaysPerWeek-1)
	fmt.Fprintf(&b, "Week of %s – %s\n", dateutil.Format(weekStart), dateutil.Format(end))

	if len(tasks) == 0 {
		b.WriteString("\nNo tasks.\n")
		return b.String()
	}

	for i, day := range days {
		if len(day) == 0 {
			continue
		}
		sort.SliceStable(day, func(a, b int) bool { return day[a].Time < day[b].Time })
		fmt.Fprintf(&b, "\n%s %s\n", task.WeekdayName(i), dateutil.Format(weekStart.AddDate(0, 0, i)))

		current := period.Period(-1)
		for _, t := range day {
			if p := t.Period(); p != current {
				current = p
				fmt.Fprintf(&b, "  %s\n", p.Title())
			}
			b.WriteString("    ")
			b.WriteString(agendaLine(t))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func agendaLine(t task.Task) string {
	check := "[ ]"
	if t.IsCompleted() {
		check = "[x]"
	}
	parts := []string{check, t.Time.String()}
	if t.Icon != "" {
		parts = append(parts, t.Icon)
	}
	parts = append(parts, t.Name)
	if t.Priority != task.PriorityMedium {
		parts = append(parts, "("+t.Priority.String()+")")
	}
	return strings.Join(parts, " ")
}
