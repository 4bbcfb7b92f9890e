package view

import (
	"strconv"
	"time"

	"github.com/javiermolinar/weekboard/internal/task"
)

// HeaderLabels builds the seven day column labels and returns the index of
// today's column, or -1 when today is outside the week.
func HeaderLabels(weekStart time.Time, today time.Time) ([task.DaysPerWeek]string, int) {
	var labels [task.DaysPerWeek]string
	todayCol := -1

	for i := range task.DaysPerWeek {
		dayDate := weekStart.AddDate(0, 0, i)
		label := task.WeekdayShortName(i) + " " + strconv.Itoa(dayDate.Day())
		if sameDay(dayDate, today) {
			label = "*" + label + "*"
			todayCol = i
		}
		labels[i] = label
	}

	return labels, todayCol
}

// WeekTitle formats the week range, e.g. "Jan 13 – Jan 19 2025".
func WeekTitle(weekStart time.Time) string {
	end := weekStart.AddDate(0, 0, task.DaysPerWeek-1)
	return weekStart.Format("Jan 2") + " – " + end.Format("Jan 2 2006")
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
