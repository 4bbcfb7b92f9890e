// Package notify carries user-facing feedback from the board to whatever surface shows it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind classifies a notification.
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Notifier receives fire-and-forget notifications.
type Notifier interface {
	Emit(kind Kind, message string)
}

// Func adapts a function to a Notifier.
type Func func(kind Kind, message string)

// Emit calls f.
func (f Func) Emit(kind Kind, message string) {
	f(kind, message)
}

// Discard drops every notification.
var Discard Notifier = Func(func(Kind, string) {})

// Multi fans a notification out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(kind Kind, message string) {
		for _, n := range notifiers {
			if n != nil {
				n.Emit(kind, message)
			}
		}
	})
}

// Log writes notifications to a structured logger.
func Log(logger *slog.Logger) Notifier {
	return Func(func(kind Kind, message string) {
		level := slog.LevelInfo
		if kind == Error {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, "notification", "kind", kind.String(), "message", message)
	})
}

// Entry is a recorded notification.
type Entry struct {
	Kind    Kind
	Message string
}

// Recorder keeps every notification it receives. Useful for tests and for
// surfaces that render the latest message.
type Recorder struct {
	Entries []Entry
}

// Emit records the notification.
func (r *Recorder) Emit(kind Kind, message string) {
	r.Entries = append(r.Entries, Entry{Kind: kind, Message: message})
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[len(r.Entries)-1], true
}

// Count returns how many notifications of the given kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears the recorded notifications.
func (r *Recorder) Reset() {
	r.Entries = nil
}
