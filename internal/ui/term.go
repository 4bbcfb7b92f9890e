package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Periods follow the light of the day
	colorDawn      = color.New(color.FgMagenta)
	colorMorning   = color.New(color.FgYellow)
	colorAfternoon = color.New(color.FgCyan)
	colorEvening   = color.New(color.FgBlue)

	// Completed tasks fade out
	colorDone = color.New(color.FgWhite, color.Faint, color.CrossedOut)

	// Extreme priority stands out
	colorUrgent = color.New(color.FgRed, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Notifications
	colorSuccess = color.New(color.FgGreen)
	colorInfo    = color.New(color.FgCyan)
	colorError   = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatPeriod(p period.Period) string {
	switch p {
	case period.Dawn:
		return colorDawn.Sprint(p.Title())
	case period.Morning:
		return colorMorning.Sprint(p.Title())
	case period.Afternoon:
		return colorAfternoon.Sprint(p.Title())
	default:
		return colorEvening.Sprint(p.Title())
	}
}

// formatName formats a task name by status and priority.
func formatName(t *task.Task) string {
	switch {
	case t.IsCompleted():
		return colorDone.Sprint(t.Name)
	case t.Priority == task.PriorityExtreme:
		return colorUrgent.Sprint(t.Name)
	default:
		return t.Name
	}
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// consoleNotifier prints board notifications as colored lines.
func consoleNotifier(w io.Writer) notify.Notifier {
	return notify.Func(func(kind notify.Kind, message string) {
		switch kind {
		case notify.Success:
			fmt.Fprintln(w, colorSuccess.Sprint("✓ ")+message)
		case notify.Error:
			fmt.Fprintln(w, colorError.Sprint("✗ ")+message)
		default:
			fmt.Fprintln(w, colorInfo.Sprint("• ")+message)
		}
	})
}
