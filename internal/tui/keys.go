package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModePopover:
		return m.handlePopoverKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A mouse drag in progress owns the board until it is released.
	if m.dragActive() {
		switch msg.String() {
		case "esc":
			m.ctrl.CancelDrag()
			return m, nil
		case " ", "x", "enter", "e", "n", "a", "d", "delete", "m":
			return m, nil
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.focus = Position{Day: max(0, m.focus.Day-1), Period: m.focus.Period}
		m.clampFocus()
		m.logFocus("left")
	case "l", "right":
		m.focus = Position{Day: min(task.DaysPerWeek-1, m.focus.Day+1), Period: m.focus.Period}
		m.clampFocus()
		m.logFocus("right")
	case "j", "down":
		m.focusDown()
		m.logFocus("down")
	case "k", "up":
		m.focusUp()
		m.logFocus("up")

	// Week navigation
	case "[", "H":
		return m.loadWeek(m.wantWeek.AddDate(0, 0, -task.DaysPerWeek))
	case "]", "L":
		return m.loadWeek(m.wantWeek.AddDate(0, 0, task.DaysPerWeek))
	case "t":
		return m.loadWeek(m.now())
	case "r":
		return m.loadWeek(m.wantWeek)

	// Task actions
	case "m":
		return m.liftFocused()
	case " ", "x":
		id, ok := m.focusedTaskID()
		if !ok {
			return m, nil
		}
		p, err := m.ctrl.ToggleComplete(id)
		if err != nil {
			return m.reportError(err)
		}
		m.focusTask(id)
		return m, commands.Sync(m.ctx, p)
	case "enter", "e":
		if id, ok := m.focusedTaskID(); ok {
			return m.openEditPopover(id)
		}
		return m.openCreatePopover(m.focus.Day, m.focus.Period)
	case "n", "a":
		return m.openCreatePopover(m.focus.Day, m.focus.Period)
	case "d", "delete":
		id, ok := m.focusedTaskID()
		if !ok {
			return m, nil
		}
		m.confirmID = id
		return m.setMode(ModeConfirmDelete, "delete requested"), nil
	case "y":
		tasks := m.ctrl.Tasks()
		return m, commands.CopyAgenda(FormatAgenda(m.ctrl.WeekStart(), tasks), len(tasks))
	}

	return m, nil
}

// handleMoveKeys steers a lifted task with the keyboard.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.ctrl.Drag()
	if s == nil || !s.Dragging() {
		return m.setMode(ModeNormal, "drag lost"), nil
	}
	hover := s.Hover()
	if !hover.Valid {
		origin := s.Origin()
		hover = board.CellTarget(origin.Day, origin.Period)
	}

	switch msg.String() {
	case "esc", "q":
		m.ctrl.CancelDrag()
		m.focusTask(s.TaskID())
		return m.setMode(ModeNormal, "move cancelled"), nil
	case "enter", " ", "m":
		return m.release(board.Point{}, hover)
	case "h", "left":
		hover.Day = max(0, hover.Day-1)
	case "l", "right":
		hover.Day = min(task.DaysPerWeek-1, hover.Day+1)
	case "k", "up":
		if hover.Period > period.Dawn {
			hover.Period--
		}
	case "j", "down":
		if hover.Period < period.Evening {
			hover.Period++
		}
	default:
		return m, nil
	}

	if err := m.ctrl.DragHover(board.CellTarget(hover.Day, hover.Period)); err != nil {
		m.logger.Debug("hover rejected", "error", err)
	}
	return m, nil
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.confirmID = ""
		m = m.setMode(ModeNormal, "delete confirmed")
		p, err := m.ctrl.Delete(id)
		if err != nil {
			return m.reportError(err)
		}
		m.clampFocus()
		return m, commands.Sync(m.ctx, p)
	case "n", "esc", "q":
		m.confirmID = ""
		return m.setMode(ModeNormal, "delete cancelled"), nil
	}
	return m, nil
}

// liftFocused picks up the focused task for a keyboard move.
func (m Model) liftFocused() (tea.Model, tea.Cmd) {
	id, ok := m.focusedTaskID()
	if !ok {
		return m, nil
	}
	if err := m.ctrl.BeginDrag(id, board.Point{}); err != nil {
		return m.reportError(err)
	}
	if err := m.ctrl.Lift(); err != nil {
		m.ctrl.CancelDrag()
		return m.reportError(err)
	}
	return m.setMode(ModeMove, "task lifted"), nil
}

// release ends the active drag over a target. A drop that changes cell
// becomes a pending move; a click on a task opens its popover.
func (m Model) release(at board.Point, over board.Target) (tea.Model, tea.Cmd) {
	rel, err := m.ctrl.EndDrag(at, over)
	m = m.setMode(ModeNormal, "drag released")
	if err != nil {
		if rel.TaskID != "" {
			m.focusTask(rel.TaskID)
		}
		return m.reportError(err)
	}

	switch rel.Kind {
	case board.ReleaseClick:
		return m.openEditPopover(rel.TaskID)
	case board.ReleaseCancel:
		m.focusTask(rel.TaskID)
		m.status.set(notify.Info, "Move cancelled", m.now())
		return m, commands.ClearStatusAfter(statusTTL)
	}

	m.focusTask(rel.TaskID)
	return m, commands.Sync(m.ctx, rel.Pending)
}

// loadWeek asks for the week containing weekOf. Answers for any other week
// are dropped when they arrive.
func (m Model) loadWeek(weekOf time.Time) (tea.Model, tea.Cmd) {
	if m.dragActive() {
		m.ctrl.CancelDrag()
	}
	m.wantWeek = task.StartOfWeek(weekOf)
	m.loading = true
	m.logger.Debug("loading week", "start", m.wantWeek.Format("2006-01-02"))
	return m, commands.LoadWeek(m.ctx, m.repo, m.wantWeek)
}

// reportError shows err on the status line.
func (m Model) reportError(err error) (tea.Model, tea.Cmd) {
	m.logger.Warn("board error", "error", err)
	m.status.set(notify.Error, err.Error(), m.now())
	return m, commands.ClearStatusAfter(statusTTL)
}

// dragging reports whether a task is detached from its cell.
func (m Model) dragging() bool {
	s := m.ctrl.Drag()
	return s != nil && s.Dragging()
}

// dragActive reports whether a pressed task is armed or dragging.
func (m Model) dragActive() bool {
	s := m.ctrl.Drag()
	return s != nil && s.Active()
}

// focusedTaskID returns the task under the keyboard focus.
func (m Model) focusedTaskID() (string, bool) {
	cell := m.ctrl.Cell(m.focus.Day, m.focus.Period)
	if m.focus.Index < 0 || m.focus.Index >= len(cell) {
		return "", false
	}
	return cell[m.focus.Index].ID, true
}

// focusTask moves the focus onto a task, wherever it now lives.
func (m *Model) focusTask(id string) {
	loc, ok := m.ctrl.Locate(id)
	if !ok {
		m.clampFocus()
		return
	}
	m.focus = Position{Day: loc.Day, Period: loc.Period, Index: loc.Index}
}

// clampFocus keeps the focus inside the board and its cell.
func (m *Model) clampFocus() {
	m.focus.Day = min(max(m.focus.Day, 0), task.DaysPerWeek-1)
	if !m.focus.Period.Valid() {
		m.focus.Period = period.Morning
	}
	n := len(m.ctrl.Cell(m.focus.Day, m.focus.Period))
	m.focus.Index = min(max(m.focus.Index, 0), max(0, n-1))
}

// focusDown walks the tasks of a day column top to bottom, crossing periods.
func (m *Model) focusDown() {
	n := len(m.ctrl.Cell(m.focus.Day, m.focus.Period))
	if m.focus.Index < n-1 {
		m.focus.Index++
		return
	}
	if m.focus.Period < period.Evening {
		m.focus.Period++
		m.focus.Index = 0
	}
}

// focusUp walks the tasks of a day column bottom to top, crossing periods.
func (m *Model) focusUp() {
	if m.focus.Index > 0 {
		m.focus.Index--
		return
	}
	if m.focus.Period > period.Dawn {
		m.focus.Period--
		m.focus.Index = max(0, len(m.ctrl.Cell(m.focus.Day, m.focus.Period))-1)
	}
}
