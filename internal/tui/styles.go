// Package tui provides the terminal week board for weekboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/tui/theme"
	"github.com/javiermolinar/weekboard/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Title line
	TitleStyle     lipgloss.Style
	TitleMetaStyle lipgloss.Style

	// Day headers
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayStatsStyle       lipgloss.Style

	// Period label column, one per period
	PeriodLabelStyles [period.Count]lipgloss.Style
	PeriodRangeStyle  lipgloss.Style

	// Task lines, one per period
	TaskStyles     [period.Count]lipgloss.Style
	TaskAltStyles  [period.Count]lipgloss.Style // Alternate shade for adjacent tasks
	TaskDoneStyles [period.Count]lipgloss.Style

	TaskSelectedStyle lipgloss.Style
	TaskLiftedStyle   lipgloss.Style // The dragged task in its origin cell
	GhostStyle        lipgloss.Style // Where a dragged task would land
	GhostAdjustStyle  lipgloss.Style // Same, when the drop changes its time
	DropTargetStyle   lipgloss.Style // Empty lines of the hovered cell
	CursorStyle       lipgloss.Style // Focused empty cell
	MoreStyle         lipgloss.Style

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Separator style
	SeparatorStyle lipgloss.Style

	// Status line, one per notification kind
	StatusStyles [3]lipgloss.Style
	StatusStyle  lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Popover styles
	ModalBgColor           lipgloss.Color
	ModalStyle             lipgloss.Style
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalLabelFocusedStyle lipgloss.Style
	ModalErrorStyle        lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalOptionStyle       lipgloss.Style
	ModalOptionActiveStyle lipgloss.Style

	// Viewport background
	ViewportStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.TitleMetaStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent)

	s.DayStatsStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.PeriodRangeStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Width(labelWidth)

	for _, p := range period.All() {
		colors := palette.Periods[p]
		s.PeriodLabelStyles[p] = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Fg).
			Background(s.colorBg).
			Width(labelWidth)

		// Period rows: tinted background with readable text
		s.TaskStyles[p] = lipgloss.NewStyle().
			Background(colors.Bg).
			Foreground(colors.Text)
		s.TaskAltStyles[p] = lipgloss.NewStyle().
			Background(colors.BgAlt).
			Foreground(colors.Text)

		// Completed tasks: muted and struck through
		s.TaskDoneStyles[p] = lipgloss.NewStyle().
			Background(colors.DoneBg).
			Foreground(s.colorFgMuted).
			Strikethrough(true)
	}

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.TaskLiftedStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight).
		Foreground(s.colorFgMuted).
		Italic(true)

	s.GhostStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.GhostAdjustStyle = s.GhostStyle.
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning)

	s.DropTargetStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorFgMuted)

	s.CursorStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.MoreStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Italic(true)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)
	s.StatusStyles[notify.Info] = s.StatusStyle.Foreground(s.colorAccent)
	s.StatusStyles[notify.Success] = s.StatusStyle.Foreground(palette.Success)
	s.StatusStyles[notify.Error] = s.StatusStyle.Foreground(palette.Error).Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Popover styles use the high-contrast modal colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		BorderBackground(modalBg).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(popoverWidth).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalLabelFocusedStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg).
		Bold(true)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(palette.Error).
		Background(modalBg).
		Bold(true)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 1)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Padding(0, 1).
		Underline(true)

	s.ModalOptionStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalOptionActiveStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight).
		Bold(true)

	// Viewport background - fill entire terminal with base background.
	s.ViewportStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	return s
}

// FrameStyles returns the styles shared by every popover.
func (s *Styles) FrameStyles() view.FrameStyles {
	return view.FrameStyles{
		Header:       s.ModalHeaderStyle,
		Title:        s.ModalTitleStyle,
		Footer:       s.ModalFooterStyle,
		Box:          s.ModalStyle,
		Button:       s.ModalButtonStyle,
		ActiveButton: s.ModalButtonActiveStyle,
		Body:         s.ModalBodyStyle,
	}
}

// PopoverStyles returns the styles of the task popover.
func (s *Styles) PopoverStyles() view.PopoverStyles {
	return view.PopoverStyles{
		FrameStyles:       s.FrameStyles(),
		LabelStyle:        s.ModalLabelStyle,
		FocusedLabelStyle: s.ModalLabelFocusedStyle,
		MetaStyle:         s.ModalMetaStyle,
		ErrorStyle:        s.ModalErrorStyle,
	}
}

// TaskStyle picks the style of a task line. alt selects the alternate shade
// used to tell adjacent tasks apart.
func (s *Styles) TaskStyle(p period.Period, done, alt bool) lipgloss.Style {
	if !p.Valid() {
		p = period.Morning
	}
	switch {
	case done:
		return s.TaskDoneStyles[p]
	case alt:
		return s.TaskAltStyles[p]
	default:
		return s.TaskStyles[p]
	}
}

// StatusStyleFor returns the status line style of a notification kind.
func (s *Styles) StatusStyleFor(kind notify.Kind) lipgloss.Style {
	if kind < notify.Info || kind > notify.Error {
		return s.StatusStyle
	}
	return s.StatusStyles[kind]
}
