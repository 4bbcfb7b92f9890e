package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/config"
	"github.com/javiermolinar/weekboard/internal/period"
)

func TestNewFocusesNow(t *testing.T) {
	sundayNight := monday.AddDate(0, 0, 6).Add(23*time.Hour + 30*time.Minute)
	m := New(context.Background(), newMemRepo(), nil, WithNow(func() time.Time { return sundayNight }))

	if m.focus != (Position{Day: 6, Period: period.Evening}) {
		t.Fatalf("focus = %+v", m.focus)
	}
	if !m.wantWeek.Equal(monday) {
		t.Fatalf("want week = %s, want %s", m.wantWeek, monday)
	}
	if !m.loading || m.mode != ModeNormal {
		t.Fatalf("loading = %v mode = %s", m.loading, m.mode)
	}
	if m.config == nil || m.theme == nil || m.styles == nil {
		t.Fatal("defaults not applied")
	}
}

func TestNewFallsBackToDefaultTheme(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "no-such-theme"
	m := New(context.Background(), newMemRepo(), cfg)
	if m.theme == nil || m.theme.Name != "mocha" {
		t.Fatalf("theme = %+v", m.theme)
	}
}

func TestNewUsesConfiguredDragThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Board.DragThreshold = 10
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := New(context.Background(), repo, cfg, WithNow(func() time.Time { return wednesdayMorning }))
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = run(t, m, m.Init())

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	m = send(t, m, mouse(tea.MouseActionMotion, x+5, y))
	if m.dragging() {
		t.Fatal("five cells is below a threshold of ten")
	}
	m = send(t, m, mouse(tea.MouseActionMotion, x+10, y))
	if !m.dragging() {
		t.Fatal("ten cells reaches the threshold")
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "normal"},
		{ModeMove, "move"},
		{ModePopover, "popover"},
		{ModeConfirmDelete, "confirm-delete"},
		{Mode(9), "mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}
