package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = line
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modalContent and splices it over the base content.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modalW, modalH := ContentSize(modalContent)
	top := (height - modalH) / 2
	left := (width - modalW) / 2
	return RenderOverlayAt(baseContent, modalContent, width, height, top, left, modalBg)
}

// RenderOverlayAt splices content over the base content with its top-left
// corner at (left, top), shifted as needed to keep it on screen.
func RenderOverlayAt(baseContent, content string, width, height, top, left int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return baseContent
	}
	overlayLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	overlayW, overlayH := ContentSize(content)
	if overlayW == 0 || overlayH == 0 {
		return baseContent
	}
	overlayW = min(overlayW, width)
	overlayH = min(overlayH, height)
	top = max(0, min(top, height-overlayH))
	left = max(0, min(left, width-overlayW))

	for i, line := range overlayLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > overlayW {
			line = ansi.Cut(line, 0, overlayW)
			lineWidth = overlayW
		}
		if lineWidth < overlayW {
			paddingStyle := lipgloss.NewStyle().Background(bg)
			line += paddingStyle.Render(strings.Repeat(" ", overlayW-lineWidth))
		}
		line = ApplyModalBackgroundResets(line, bg)
		overlayLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, lipgloss.Color("")), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+overlayH {
			lines = append(lines, baseLines[row])
			continue
		}

		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+overlayW, width)
		lines = append(lines, leftSlice+overlayLines[row-top]+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// ContentSize returns the widest line and the line count, ignoring trailing blank lines.
func ContentSize(content string) (int, int) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return 0, 0
	}
	lines := strings.Split(content, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth, len(lines)
}

// ApplyModalBackgroundResets reapplies modal background after ANSI resets.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	bgSeq := ModalBackgroundSeq(modalBg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
