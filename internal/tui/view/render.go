// Package view composes the board screen, its footer and its popovers.
package view

// Layer draws a popover on top of the board.
type Layer interface {
	Render(base string, width, height int, content string) string
}

// Screen is one frame: the board and, when open, the popover above it.
type Screen struct {
	Width   int
	Height  int
	Board   string
	Popover string
	Layer   Layer
	Loading string
}

// Compose returns the frame to print. Until the terminal size is known it
// shows the loading text.
func Compose(s Screen) string {
	if s.Width == 0 || s.Height == 0 {
		return s.Loading
	}
	if s.Popover == "" || s.Layer == nil {
		return s.Board
	}
	return s.Layer.Render(s.Board, s.Width, s.Height, s.Popover)
}
