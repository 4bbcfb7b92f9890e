package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/view"
)

// View renders the board with its footer and any open popover.
func (m Model) View() string {
	return view.Compose(m.screen())
}

func (m Model) screen() view.Screen {
	popover := ""
	if m.mode == ModePopover || m.mode == ModeConfirmDelete {
		popover = m.renderModal()
	}

	return view.Screen{
		Width:   m.width,
		Height:  m.height,
		Board:   m.renderAppContent(),
		Popover: popover,
		Layer:   m.overlay,
		Loading: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	l := m.layoutCache
	if l.Width <= 0 || l.Height <= 0 {
		return ""
	}

	lines := make([]string, 0, l.GridBottom()+footerLines)
	lines = append(lines, m.renderTitle(), m.renderDayHeaders(l), m.renderRule(l))

	var cells [task.DaysPerWeek][]string
	for _, p := range period.All() {
		for day := range task.DaysPerWeek {
			cells[day] = m.cellLines(l, day, p)
		}
		for line := range l.RowH {
			var b strings.Builder
			b.WriteString(m.periodLabel(p, line))
			for day := range task.DaysPerWeek {
				b.WriteString(m.styles.SeparatorStyle.Render("│"))
				b.WriteString(cells[day][line])
			}
			lines = append(lines, b.String())
		}
		lines = append(lines, m.renderRule(l))
	}

	lines = append(lines, view.RenderFooter(m.footerViewState(l)))
	return view.PadLinesWithBackground(strings.Join(lines, "\n"), m.width, m.height, m.styles.colorBg)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render(" weekboard ")
	meta := " " + view.WeekTitle(m.ctrl.WeekStart())
	if m.loading {
		meta += " · loading…"
	}
	if n := m.ctrl.InFlight(); n > 0 {
		meta += fmt.Sprintf(" · syncing %d", n)
	}
	return title + m.styles.TitleMetaStyle.Render(meta)
}

func (m Model) renderDayHeaders(l LayoutCache) string {
	labels, todayCol := view.HeaderLabels(m.ctrl.WeekStart(), m.now())

	var b strings.Builder
	b.WriteString(m.placeBox(labelWidth, 1, lipgloss.Top, ""))
	for day, label := range labels {
		b.WriteString(m.styles.SeparatorStyle.Render("│"))
		if stats := m.ctrl.DayStats(day); stats.Total > 0 {
			withStats := fmt.Sprintf("%s %d/%d", label, stats.Completed, stats.Total)
			if lipgloss.Width(withStats) <= l.ColW {
				label = withStats
			}
		}
		style := m.styles.DayHeaderStyle
		if day == todayCol {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(style.Width(l.ColW).Render(ansi.Truncate(label, l.ColW, "…")))
	}
	return b.String()
}

func (m Model) renderRule(l LayoutCache) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("─", labelWidth))
	for range task.DaysPerWeek {
		b.WriteString("┼")
		b.WriteString(strings.Repeat("─", l.ColW))
	}
	return m.styles.SeparatorStyle.Render(b.String())
}

// periodLabel renders one line of the label column: the period title, then
// its hour range.
func (m Model) periodLabel(p period.Period, line int) string {
	switch line {
	case 0:
		return m.styles.PeriodLabelStyles[p].Render(" " + p.Title())
	case 1:
		from, to := p.Range()
		return m.styles.PeriodRangeStyle.Render(fmt.Sprintf(" %02d–%02d", from, to))
	default:
		return m.placeBox(labelWidth, 1, lipgloss.Top, "")
	}
}

// cellFocus returns the focused index if the focus is in this cell.
func (m Model) cellFocus(day int, p period.Period) int {
	if m.focus.Day == day && m.focus.Period == p {
		return max(0, m.focus.Index)
	}
	return 0
}

// cellLines renders the RowH lines of one cell.
func (m Model) cellLines(l LayoutCache, day int, p period.Period) []string {
	cell := m.ctrl.Cell(day, p)
	start, end, more := visibleRange(len(cell), l.RowH, m.cellFocus(day, p))

	lines := make([]string, 0, l.RowH)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTaskLine(cell[i], i, day, p, l.ColW))
	}
	if more {
		text := fmt.Sprintf(" +%d more", len(cell)-(end-start))
		lines = append(lines, m.styles.MoreStyle.Width(l.ColW).Render(ansi.Truncate(text, l.ColW, "…")))
	}

	hovered := m.isHovered(day, p)
	filler := m.styles.EmptyCellStyle
	if hovered {
		filler = m.styles.DropTargetStyle
	}
	if len(cell) == 0 && m.mode == ModeNormal && !m.dragging() && m.focus.Day == day && m.focus.Period == p {
		lines = append(lines, m.styles.CursorStyle.Width(l.ColW).Render(ansi.Truncate(" + add", l.ColW, "…")))
	}
	for len(lines) < l.RowH {
		lines = append(lines, filler.Width(l.ColW).Render(""))
	}

	if hovered {
		if ghost, ok := m.renderGhost(day, p, l.ColW); ok {
			lines[min(end-start, l.RowH-1)] = ghost
		}
	}
	return lines
}

// isHovered reports whether a dragged task is over this cell.
func (m Model) isHovered(day int, p period.Period) bool {
	if !m.dragging() {
		return false
	}
	hover := m.ctrl.Drag().Hover()
	return hover.Valid && hover.Day == day && hover.Period == p
}

// renderGhost previews where the dragged task lands and at what time.
// Nothing is drawn over the task's own cell.
func (m Model) renderGhost(day int, p period.Period, width int) (string, bool) {
	s := m.ctrl.Drag()
	origin := s.Origin()
	if origin.Day == day && origin.Period == p {
		return "", false
	}
	t, ok := m.ctrl.Task(s.TaskID())
	if !ok {
		return "", false
	}
	res := board.Validate(t, day, p)
	style := m.styles.GhostStyle
	if res.WasAdjusted {
		style = m.styles.GhostAdjustStyle
	}
	text := " ↳ " + res.Time.String() + " " + t.Name
	return style.Width(width).Render(ansi.Truncate(text, width, "…")), true
}

func (m Model) renderTaskLine(t task.Task, index, day int, p period.Period, width int) string {
	var b strings.Builder
	b.WriteString(" ")
	if t.IsCompleted() {
		b.WriteString("✓ ")
	} else {
		b.WriteString("○ ")
	}
	b.WriteString(t.Time.String())
	b.WriteString(" ")
	switch t.Priority {
	case task.PriorityHigh:
		b.WriteString("! ")
	case task.PriorityExtreme:
		b.WriteString("!! ")
	}
	if t.Icon != "" {
		b.WriteString(t.Icon)
		b.WriteString(" ")
	}
	b.WriteString(t.Name)

	var style lipgloss.Style
	switch {
	case m.dragging() && m.ctrl.Drag().TaskID() == t.ID:
		style = m.styles.TaskLiftedStyle
	case m.mode == ModeNormal && !m.dragging() && m.focus == (Position{Day: day, Period: p, Index: index}):
		style = m.styles.TaskSelectedStyle
	default:
		style = m.styles.TaskStyle(p, t.IsCompleted(), index%2 == 1)
	}
	return style.Width(width).Render(ansi.Truncate(b.String(), width, "…"))
}

func (m Model) footerViewState(l LayoutCache) view.FooterViewState {
	statusText := m.status.text
	statusStyle := m.styles.StatusStyleFor(m.status.kind)
	if statusText == "" {
		statusText = m.weekSummary()
		statusStyle = m.styles.HelpStyle
	}
	return view.FooterViewState{
		InnerW:      l.Width,
		StatusText:  " " + statusText,
		HelpText:    " " + m.helpText(),
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
	}
}

func (m Model) weekSummary() string {
	total, done := 0, 0
	for day := range task.DaysPerWeek {
		stats := m.ctrl.DayStats(day)
		total += stats.Total
		done += stats.Completed
	}
	if total == 0 {
		return "No tasks this week"
	}
	return fmt.Sprintf("%d tasks · %d done", total, done)
}

func (m Model) helpText() string {
	switch {
	case m.mode == ModeMove:
		return "←↓↑→ choose cell · enter drop · esc cancel"
	case m.mode == ModePopover:
		return "tab next field · enter save · esc cancel"
	case m.mode == ModeConfirmDelete:
		return "y confirm · n cancel"
	case m.dragging():
		return "release to drop · esc cancel"
	default:
		return "←↓↑→ focus · [ ] week · t today · m move · space done · enter edit · n new · d delete · y copy · q quit"
	}
}
