package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekboard/internal/tui/view"
)

// OverlayModel places a popover over the board, either next to an anchor
// cell or centered.
type OverlayModel struct {
	bgColor  lipgloss.Color
	anchored bool
	top      int
	left     int
}

// NewOverlayModel initializes a centered overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{bgColor: lipgloss.Color("")}
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// AnchorAt pins the overlay's top-left corner to a screen position.
func (o *OverlayModel) AnchorAt(left, top int) {
	o.anchored = true
	o.left = left
	o.top = top
}

// Center drops the anchor.
func (o *OverlayModel) Center() {
	o.anchored = false
	o.left, o.top = 0, 0
}

// Anchored reports whether the overlay follows an anchor.
func (o OverlayModel) Anchored() bool {
	return o.anchored
}

// Render draws content on top of base.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 || content == "" {
		return base
	}
	if !o.anchored {
		return view.RenderModalOverlay(base, content, width, height, o.bgColor)
	}
	return view.RenderOverlayAt(base, content, width, height, o.top, o.left, o.bgColor)
}
