package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FrameStyles are the styles shared by every popover.
type FrameStyles struct {
	Header       lipgloss.Style
	Title        lipgloss.Style
	Footer       lipgloss.Style
	Box          lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
	Body         lipgloss.Style
}

// PopoverField is one labelled row of the task popover.
type PopoverField struct {
	Label   string
	Value   string
	Focused bool
}

// PopoverModel holds everything the task popover shows.
type PopoverModel struct {
	Title  string
	Meta   string
	Fields []PopoverField
	Error  string
	IsNew  bool
}

// PopoverStyles extends the frame styles with field and message styles.
type PopoverStyles struct {
	FrameStyles
	LabelStyle        lipgloss.Style
	FocusedLabelStyle lipgloss.Style
	MetaStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderPopover renders the task popover with its fields.
func RenderPopover(m PopoverModel, styles PopoverStyles) string {
	return frame(m.Title, popoverBody(m, styles), PopoverFooter(m.IsNew, styles.FrameStyles), styles.FrameStyles)
}

// RenderConfirmDelete renders the delete confirmation for the named task.
func RenderConfirmDelete(name string, styles FrameStyles) string {
	body := styles.Body.Render("Delete \"" + name + "\"?")
	return frame("Delete task", body, ConfirmDeleteFooter(styles), styles)
}

// PopoverFooter renders the buttons of the task popover. The edit popover
// has more buttons and packs them tighter.
func PopoverFooter(isNew bool, styles FrameStyles) string {
	if isNew {
		return buttons(styles, false, "[Enter] Create", "[Esc] Cancel")
	}
	return buttons(styles, true, "[Enter] Save", "[Tab] Next", "[Esc] Close")
}

// ConfirmDeleteFooter renders the buttons of the delete confirmation.
func ConfirmDeleteFooter(styles FrameStyles) string {
	return buttons(styles, false, "[y/Enter] Confirm", "[n/Esc] Cancel")
}

func popoverBody(m PopoverModel, styles PopoverStyles) string {
	labelW := 0
	for _, f := range m.Fields {
		labelW = max(labelW, lipgloss.Width(f.Label))
	}

	lines := make([]string, 0, len(m.Fields)+3)
	if m.Meta != "" {
		lines = append(lines, styles.MetaStyle.Render(m.Meta), "")
	}
	for _, f := range m.Fields {
		label := f.Label + strings.Repeat(" ", labelW-lipgloss.Width(f.Label))
		marker := "  "
		labelStyle := styles.LabelStyle
		if f.Focused {
			marker = "› "
			labelStyle = styles.FocusedLabelStyle
		}
		lines = append(lines, labelStyle.Render(marker+label)+styles.Body.Render(" "+f.Value))
	}
	if m.Error != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(m.Error))
	}
	return strings.Join(lines, "\n")
}

// frame stacks title, body and footer inside the popover box. Empty parts
// are left out.
func frame(title, body, footer string, styles FrameStyles) string {
	parts := []string{styles.Header.Render(styles.Title.Render(title))}
	if body != "" {
		parts = append(parts, body)
	}
	if footer != "" {
		parts = append(parts, styles.Footer.Render(footer))
	}
	return styles.Box.Render(strings.Join(parts, "\n\n"))
}

// buttons renders a row of buttons, the first one highlighted as the default
// action.
func buttons(styles FrameStyles, compact bool, labels ...string) string {
	normal, active := styles.Button, styles.ActiveButton
	if compact {
		normal, active = normal.Padding(0, 1), active.Padding(0, 1)
	}
	row := make([]string, len(labels))
	for i, label := range labels {
		style := normal
		if i == 0 {
			style = active
		}
		row[i] = style.Render(label)
	}
	return strings.Join(row, styles.Body.Render(" "))
}
