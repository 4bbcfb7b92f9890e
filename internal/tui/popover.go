package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/commands"
)

const popoverWidth = 44

// Popover fields in focus order. Status only exists when editing.
const (
	fieldName = iota
	fieldIcon
	fieldTime
	fieldPriority
	fieldStatus
)

// popoverState is the task popover: a form over one task, or over a new
// task for a given cell.
type popoverState struct {
	taskID   string // empty when creating
	day      int
	period   period.Period
	inputs   [3]textinput.Model // name, icon, time
	priority task.Priority
	status   task.Status
	focus    int
	err      string
}

func (p *popoverState) isNew() bool {
	return p.taskID == ""
}

func (p *popoverState) fieldCount() int {
	if p.isNew() {
		return fieldStatus
	}
	return fieldStatus + 1
}

// setFocus moves the focus, wrapping around, and focuses the matching input.
func (p *popoverState) setFocus(i int) tea.Cmd {
	n := p.fieldCount()
	p.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range p.inputs {
		if j == p.focus {
			cmd = p.inputs[j].Focus()
			continue
		}
		p.inputs[j].Blur()
	}
	return cmd
}

// clock parses the time input. An empty input means the cell's default time.
func (p *popoverState) clock() (period.Clock, error) {
	raw := strings.TrimSpace(p.inputs[fieldTime].Value())
	if raw == "" {
		return p.period.Default(), nil
	}
	c, err := period.ParseClock(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", raw)
	}
	return c, nil
}

func (m Model) newPopoverInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = popoverWidth - 16
	ti.PlaceholderStyle = m.styles.ModalPlaceholderStyle
	ti.TextStyle = m.styles.ModalInputTextStyle
	ti.PromptStyle = m.styles.ModalInputTextStyle
	ti.Cursor.Style = m.styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = m.styles.ModalInputTextStyle
	ti.SetValue(value)
	return ti
}

// openEditPopover opens the popover over an existing task.
func (m Model) openEditPopover(id string) (Model, tea.Cmd) {
	t, ok := m.ctrl.Task(id)
	if !ok {
		return m, nil
	}
	loc, _ := m.ctrl.Locate(id)
	p := &popoverState{
		taskID:   id,
		day:      loc.Day,
		period:   loc.Period,
		priority: t.Priority,
		status:   t.Status,
	}
	p.inputs[fieldName] = m.newPopoverInput("Task name", t.Name, 120)
	p.inputs[fieldIcon] = m.newPopoverInput("Emoji", t.Icon, 8)
	p.inputs[fieldTime] = m.newPopoverInput("HH:MM", t.Time.String(), 5)
	cmd := p.setFocus(fieldName)

	m.popover = p
	m.focus = Position{Day: loc.Day, Period: loc.Period, Index: loc.Index}
	m.anchorPopover(loc.Day, loc.Period)
	m = m.setMode(ModePopover, "edit task")
	return m, cmd
}

// openCreatePopover opens an empty popover for a new task in a cell.
func (m Model) openCreatePopover(day int, per period.Period) (Model, tea.Cmd) {
	p := &popoverState{
		day:      day,
		period:   per,
		priority: task.PriorityMedium,
		status:   task.StatusPending,
	}
	p.inputs[fieldName] = m.newPopoverInput("Task name", "", 120)
	p.inputs[fieldIcon] = m.newPopoverInput("Emoji", "", 8)
	p.inputs[fieldTime] = m.newPopoverInput(per.Default().String(), "", 5)
	cmd := p.setFocus(fieldName)

	m.popover = p
	m.anchorPopover(day, per)
	m = m.setMode(ModePopover, "new task")
	return m, cmd
}

// anchorPopover places the popover just inside a cell, or centers it when
// the layout is not known yet.
func (m *Model) anchorPopover(day int, per period.Period) {
	if m.width == 0 || m.height == 0 {
		m.overlay.Center()
		return
	}
	l := m.layoutCache
	m.overlay.AnchorAt(l.DayX(day)+1, l.PeriodY(per)+1)
}

func (m Model) closePopover(reason string) Model {
	m.popover = nil
	m.overlay.Center()
	return m.setMode(ModeNormal, reason)
}

func (m Model) handlePopoverKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.popover
	if p == nil {
		return m.setMode(ModeNormal, "popover lost"), nil
	}

	switch msg.String() {
	case "esc":
		return m.closePopover("popover cancelled"), nil
	case "enter":
		return m.submitPopover()
	case "tab", "down":
		return m, p.setFocus(p.focus + 1)
	case "shift+tab", "up":
		return m, p.setFocus(p.focus - 1)
	}

	switch p.focus {
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			p.priority = p.priority.Prev()
		case "right", "l", " ":
			p.priority = p.priority.Next()
		}
		return m, nil
	case fieldStatus:
		switch msg.String() {
		case "left", "h", "right", "l", " ", "x":
			p.status = p.status.Toggled()
		}
		return m, nil
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	p.err = ""
	return m, cmd
}

// submitPopover turns the form into a create or an edit.
func (m Model) submitPopover() (tea.Model, tea.Cmd) {
	p := m.popover
	name := strings.TrimSpace(p.inputs[fieldName].Value())
	icon := strings.TrimSpace(p.inputs[fieldIcon].Value())
	clock, err := p.clock()
	if err != nil {
		p.err = err.Error()
		return m, nil
	}

	if p.isNew() {
		t, err := task.New(name, icon, dateutil.Format(m.ctrl.DateOf(p.day)), clock.String(), p.priority.String())
		if err != nil {
			p.err = err.Error()
			return m, nil
		}
		pending, err := m.ctrl.Create(t)
		if err != nil {
			p.err = err.Error()
			return m, nil
		}
		m = m.closePopover("task created")
		m.focusTask(t.ID)
		return m, commands.Sync(m.ctx, pending)
	}

	t, ok := m.ctrl.Task(p.taskID)
	if !ok {
		m = m.closePopover("task gone")
		return m, nil
	}
	pending, err := m.ctrl.Edit(p.taskID, popoverFields(t, name, icon, clock, p.priority, p.status))
	if err != nil {
		p.err = err.Error()
		return m, nil
	}
	id := p.taskID
	m = m.closePopover("task saved")
	m.focusTask(id)
	return m, commands.Sync(m.ctx, pending)
}

// popoverFields returns only the fields that differ from t.
func popoverFields(t task.Task, name, icon string, clock period.Clock, priority task.Priority, status task.Status) task.Fields {
	var f task.Fields
	if name != t.Name {
		f.Name = &name
	}
	if icon != t.Icon {
		f.Icon = &icon
	}
	if clock != t.Time {
		f.Time = &clock
	}
	if priority != t.Priority {
		f.Priority = &priority
	}
	if status != t.Status {
		f.Status = &status
	}
	return f
}
