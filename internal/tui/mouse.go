package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/board"
)

// handleMouseMsg turns pointer events into drag gestures.
//
// A press on a task arms a drag. Motion past the threshold detaches the
// task, and the release drops it on the cell under the pointer. A release
// before the threshold is a click and opens the task popover.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	over := m.layoutCache.HitTest(msg.X, msg.Y)
	m.logMouse(msg, over)
	at := board.Point{X: msg.X, Y: msg.Y}

	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !over.Valid {
			return m, nil
		}
		if s := m.ctrl.Drag(); s != nil && s.Active() {
			// Press without a release in between: the release got lost.
			m.ctrl.CancelDrag()
		}
		id, index, ok := m.taskAt(over, msg.Y)
		if !ok {
			m.focus = Position{Day: over.Day, Period: over.Period}
			m.clampFocus()
			m.logFocus("click on cell")
			return m, nil
		}
		m.focus = Position{Day: over.Day, Period: over.Period, Index: index}
		if err := m.ctrl.BeginDrag(id, at); err != nil {
			return m.reportError(err)
		}
		return m, nil

	case tea.MouseActionMotion:
		if s := m.ctrl.Drag(); s == nil || !s.Active() {
			return m, nil
		}
		if err := m.ctrl.DragMove(at, over); err != nil {
			m.logger.Debug("drag motion rejected", "error", err)
		}
		return m, nil

	case tea.MouseActionRelease:
		if s := m.ctrl.Drag(); s == nil || !s.Active() {
			return m, nil
		}
		return m.release(at, over)
	}

	return m, nil
}

// taskAt returns the task drawn on line y of a cell.
func (m Model) taskAt(over board.Target, y int) (id string, index int, ok bool) {
	line := m.layoutCache.LineAt(y)
	if line < 0 {
		return "", 0, false
	}
	cell := m.ctrl.Cell(over.Day, over.Period)
	start, end, _ := visibleRange(len(cell), m.layoutCache.RowH, m.cellFocus(over.Day, over.Period))
	index = start + line
	if index >= end {
		return "", 0, false
	}
	return cell[index].ID, index, true
}
