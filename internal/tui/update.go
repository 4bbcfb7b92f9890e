package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutCache = m.buildLayoutCache(m.width, m.height)
		if m.popover != nil {
			m.anchorPopover(m.popover.day, m.popover.period)
		}
		return m, nil

	case commands.WeekLoadedMsg:
		if !msg.Start.Equal(task.StartOfWeek(m.wantWeek)) {
			// An answer for a week we navigated away from.
			m.logger.Debug("dropping stale week", "start", msg.Start.Format("2006-01-02"))
			return m, nil
		}
		m.ctrl.Replace(msg.Start, msg.Tasks)
		m.loading = false
		if m.mode == ModeMove && !m.dragging() {
			m = m.setMode(ModeNormal, "dragged task gone")
		}
		if m.mode == ModePopover && m.popover != nil && !m.popover.isNew() {
			if _, ok := m.ctrl.Task(m.popover.taskID); !ok {
				m = m.closePopover("edited task gone")
			}
		}
		if m.mode == ModeConfirmDelete {
			if _, ok := m.ctrl.Task(m.confirmID); !ok {
				m.confirmID = ""
				m = m.setMode(ModeNormal, "deleted task gone")
			}
		}
		m.clampFocus()
		return m, nil

	case commands.SyncedMsg:
		refetch := m.ctrl.Settle(msg.Result)
		m.clampFocus()
		cmds := []tea.Cmd{commands.ClearStatusAfter(statusTTL)}
		if refetch {
			m.loading = true
			cmds = append(cmds, commands.LoadWeek(m.ctx, m.repo, m.wantWeek))
		}
		return m, tea.Batch(cmds...)

	case commands.ErrMsg:
		m.loading = false
		m.logger.Warn("tui error", "error", msg.Err)
		m.status.set(notify.Error, msg.Err.Error(), m.now())
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.StatusMsgCmd:
		m.status.set(msg.Kind, msg.Msg, m.now())
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		// A newer message restarted the timer; leave it up.
		if m.now().Sub(m.status.at) >= statusTTL {
			m.status.clear()
		}
		return m, nil
	}

	return m, nil
}
