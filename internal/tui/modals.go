package tui

import (
	"strings"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/view"
)

// renderModal renders the current popover, if any.
func (m Model) renderModal() string {
	switch m.mode {
	case ModePopover:
		return m.renderPopover()
	case ModeConfirmDelete:
		return m.renderConfirmDelete()
	default:
		return ""
	}
}

func (m Model) renderPopover() string {
	p := m.popover
	if p == nil {
		return ""
	}

	title := "Edit task"
	if p.isNew() {
		title = "New task"
	}

	// The period follows the typed time, so the user sees where the task lands.
	dest := p.period
	if c, err := p.clock(); err == nil {
		dest = period.Classify(c)
	}
	meta := task.WeekdayShortName(p.day) + " " + dateutil.Format(m.ctrl.DateOf(p.day)) + " · " + dest.Title()

	fields := []view.PopoverField{
		{Label: "Name", Value: p.inputs[fieldName].View(), Focused: p.focus == fieldName},
		{Label: "Icon", Value: p.inputs[fieldIcon].View(), Focused: p.focus == fieldIcon},
		{Label: "Time", Value: p.inputs[fieldTime].View(), Focused: p.focus == fieldTime},
		{Label: "Priority", Value: m.renderPriorityOptions(p.priority), Focused: p.focus == fieldPriority},
	}
	if !p.isNew() {
		fields = append(fields, view.PopoverField{
			Label:   "Status",
			Value:   m.renderStatusOptions(p.status),
			Focused: p.focus == fieldStatus,
		})
	}

	return view.RenderPopover(view.PopoverModel{
		Title:  title,
		Meta:   meta,
		Fields: fields,
		Error:  p.err,
		IsNew:  p.isNew(),
	}, m.styles.PopoverStyles())
}

func (m Model) renderPriorityOptions(selected task.Priority) string {
	parts := make([]string, 0, 4)
	for p := task.PriorityLow; p <= task.PriorityExtreme; p++ {
		parts = append(parts, m.renderOption(p.String(), p == selected))
	}
	return strings.Join(parts, m.styles.ModalBodyStyle.Render(" "))
}

func (m Model) renderStatusOptions(selected task.Status) string {
	return m.renderOption(string(task.StatusPending), selected == task.StatusPending) +
		m.styles.ModalBodyStyle.Render(" ") +
		m.renderOption(string(task.StatusCompleted), selected == task.StatusCompleted)
}

func (m Model) renderOption(label string, active bool) string {
	if active {
		return m.styles.ModalOptionActiveStyle.Render(label)
	}
	return m.styles.ModalOptionStyle.Render(label)
}

func (m Model) renderConfirmDelete() string {
	t, ok := m.ctrl.Task(m.confirmID)
	if !ok {
		return ""
	}
	return view.RenderConfirmDelete(t.Name, m.styles.FrameStyles())
}
