package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/board"
)

// logKeyPress logs a key press event.
func (m Model) logKeyPress(msg tea.KeyMsg) {
	m.logger.Debug("key press", "key", msg.String(), "mode", m.mode.String())
}

// logMouse logs a mouse event together with the cell under it.
func (m Model) logMouse(msg tea.MouseMsg, over board.Target) {
	if msg.Action == tea.MouseActionMotion && !m.dragging() {
		return
	}
	m.logger.Debug("mouse",
		"event", msg.String(),
		"x", msg.X,
		"y", msg.Y,
		"valid", over.Valid,
		"day", over.Day,
		"period", over.Period.String(),
	)
}

// setMode switches the interaction mode and logs the transition.
func (m Model) setMode(to Mode, reason string) Model {
	if m.mode != to {
		m.logger.Debug("mode change", "from", m.mode.String(), "to", to.String(), "reason", reason)
	}
	m.mode = to
	return m
}

// logFocus logs focus movement.
func (m Model) logFocus(reason string) {
	m.logger.Debug("focus",
		"day", m.focus.Day,
		"period", m.focus.Period.String(),
		"index", m.focus.Index,
		"reason", reason,
	)
}
