package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/tui/theme"
)

func testTheme() *theme.Theme {
	return &theme.Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Dawn:        "#ff00ff",
		Morning:     "#ffff00",
		Afternoon:   "#00ffff",
		Evening:     "#0000ff",
		Success:     "#00ff00",
		Warning:     "#ff8800",
		Error:       "#ff0000",
	}
}

func TestStylesBackgroundCoverage(t *testing.T) {
	palette := testTheme()
	styles := NewStyles(palette)

	assertBg := func(t *testing.T, name string, style lipgloss.Style, want string) {
		t.Helper()
		bg, ok := style.GetBackground().(lipgloss.Color)
		if !ok {
			t.Fatalf("%s background type = %T, want lipgloss.Color", name, style.GetBackground())
		}
		if bg != lipgloss.Color(want) {
			t.Fatalf("%s background = %q, want %q", name, bg, want)
		}
	}

	assertBg(t, "EmptyCellStyle", styles.EmptyCellStyle, palette.Bg)
	assertBg(t, "SeparatorStyle", styles.SeparatorStyle, palette.Bg)
	assertBg(t, "ViewportStyle", styles.ViewportStyle, palette.Bg)
	assertBg(t, "HelpStyle", styles.HelpStyle, palette.Bg)
	assertBg(t, "MoreStyle", styles.MoreStyle, palette.Bg)
	for _, p := range period.All() {
		assertBg(t, p.String()+" label", styles.PeriodLabelStyles[p], palette.Bg)
	}
	assertBg(t, "DropTargetStyle", styles.DropTargetStyle, palette.BgSelection)
}

func TestPeriodLabelsUsePeriodColors(t *testing.T) {
	palette := testTheme()
	styles := NewStyles(palette)

	for _, p := range period.All() {
		fg, ok := styles.PeriodLabelStyles[p].GetForeground().(lipgloss.Color)
		if !ok {
			t.Fatalf("%s foreground type = %T", p, styles.PeriodLabelStyles[p].GetForeground())
		}
		if string(fg) != palette.PeriodColor(p) {
			t.Errorf("%s label = %q, want %q", p, fg, palette.PeriodColor(p))
		}
	}
}

func TestTaskStyle(t *testing.T) {
	styles := NewStyles(testTheme())

	if !styles.TaskStyle(period.Evening, true, true).GetStrikethrough() {
		t.Error("completed tasks should be struck through")
	}
	if styles.TaskStyle(period.Dawn, false, false).GetBackground() == styles.TaskStyle(period.Dawn, false, true).GetBackground() {
		t.Error("alternate shade should differ from the base shade")
	}
	if styles.TaskStyle(period.Dawn, false, false).GetBackground() == styles.TaskStyle(period.Evening, false, false).GetBackground() {
		t.Error("periods should have distinct task backgrounds")
	}
	// Out of range periods fall back instead of panicking.
	_ = styles.TaskStyle(period.Period(9), false, false)
}

func TestStatusStyleFor(t *testing.T) {
	palette := testTheme()
	styles := NewStyles(palette)

	fg, _ := styles.StatusStyleFor(notify.Error).GetForeground().(lipgloss.Color)
	if fg != lipgloss.Color(palette.Error) {
		t.Errorf("error status = %q, want %q", fg, palette.Error)
	}
	fg, _ = styles.StatusStyleFor(notify.Success).GetForeground().(lipgloss.Color)
	if fg != lipgloss.Color(palette.Success) {
		t.Errorf("success status = %q, want %q", fg, palette.Success)
	}
	if styles.StatusStyleFor(notify.Kind(7)).GetForeground() != styles.StatusStyle.GetForeground() {
		t.Error("unknown kinds should use the plain status style")
	}
}
