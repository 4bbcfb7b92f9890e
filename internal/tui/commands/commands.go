// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/task"
)

// WeekLoadedMsg is sent when a week's tasks have been fetched.
type WeekLoadedMsg struct {
	Start time.Time // Monday of the loaded week
	Tasks []*task.Task
}

// SyncedMsg is sent when the store has answered a pending mutation.
type SyncedMsg struct {
	Result board.Result
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Kind notify.Kind
	Msg  string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

var defaultWriteClipboard = clipboard.WriteAll

// WriteClipboard writes to the system clipboard. Tests replace it.
var WriteClipboard = defaultWriteClipboard

// LoadWeek fetches the week containing weekOf.
func LoadWeek(ctx context.Context, repo task.Repository, weekOf time.Time) tea.Cmd {
	return func() tea.Msg {
		start, tasks, err := board.FetchWeek(ctx, repo, weekOf)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekLoadedMsg{Start: start, Tasks: tasks}
	}
}

// Sync runs a pending mutation against the store off the event loop.
// A nil pending yields no command.
func Sync(ctx context.Context, p *board.Pending) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return SyncedMsg{Result: p.Run(ctx)}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyAgenda writes text to the system clipboard.
func CopyAgenda(text string, count int) tea.Cmd {
	return func() tea.Msg {
		if err := WriteClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying agenda: %w", err)}
		}
		return StatusMsgCmd{Kind: notify.Success, Msg: fmt.Sprintf("Copied %d tasks to the clipboard", count)}
	}
}
