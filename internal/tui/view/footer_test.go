package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderFooter(t *testing.T) {
	out := RenderFooter(FooterViewState{
		InnerW:      20,
		StatusText:  "Saved \"Gym\"",
		HelpText:    "q quit · m move · n new · e edit",
		StatusStyle: lipgloss.NewStyle(),
		HelpStyle:   lipgloss.NewStyle().Padding(0, 1),
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("footer has %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
	if !strings.HasPrefix(ansi.Strip(lines[0]), "Saved \"Gym\"") {
		t.Errorf("status line = %q", ansi.Strip(lines[0]))
	}
	if !strings.HasSuffix(strings.TrimRight(ansi.Strip(lines[1]), " "), "…") {
		t.Errorf("help line should be truncated, got %q", ansi.Strip(lines[1]))
	}
}

func TestRenderFooterZeroWidth(t *testing.T) {
	if out := RenderFooter(FooterViewState{}); out != "" {
		t.Errorf("RenderFooter with no width = %q, want empty", out)
	}
}
