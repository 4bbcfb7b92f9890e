package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	StatusText  string
	HelpText    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.InnerW <= 0 {
		return ""
	}
	status := footerLine(state.InnerW, state.StatusStyle, state.StatusText)
	help := footerLine(state.InnerW, state.HelpStyle, state.HelpText)
	return status + "\n" + help
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	content = ansi.Truncate(content, contentWidth, "…")
	// Width covers padding but not borders or margins.
	blockWidth := width - style.GetHorizontalBorderSize() - style.GetHorizontalMargins()
	return style.Width(max(0, blockWidth)).Render(content)
}
