package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
)

func TestMouseDragAndDrop(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	if s := m.ctrl.Drag(); s == nil || !s.Active() || s.Dragging() {
		t.Fatal("press on a task should arm a drag")
	}
	if m.focus != (Position{Day: 0, Period: period.Morning}) {
		t.Fatalf("focus = %+v", m.focus)
	}

	tx, ty := cellPoint(m, 3, period.Evening, 0)
	m = send(t, m, mouse(tea.MouseActionMotion, tx, ty))
	if !m.dragging() {
		t.Fatal("motion past the threshold should detach the task")
	}
	if view := m.View(); !strings.Contains(view, "↳ 19:00 task") {
		t.Fatal("drop preview missing from view")
	}
	if got := m.helpText(); got != "release to drop · esc cancel" {
		t.Fatalf("help = %q", got)
	}

	m, cmd := sendCmd(t, m, mouse(tea.MouseActionRelease, tx, ty))
	if m.ctrl.Drag() != nil {
		t.Fatal("drag should be over")
	}
	cell := m.ctrl.Cell(3, period.Evening)
	if len(cell) != 1 || cell[0].Time != period.MustParseClock("19:00") {
		t.Fatalf("Thursday evening = %+v", cell)
	}
	if err := m.ctrl.Check(); err != nil {
		t.Fatalf("grid check: %v", err)
	}

	m = run(t, m, cmd)
	if got := repo.tasks["a"]; !got.Date.Equal(monday.AddDate(0, 0, 3)) || got.Time != period.MustParseClock("19:00") {
		t.Fatalf("stored = %s %s", got.Date, got.Time)
	}
	if m.status.kind != notify.Info || !strings.Contains(m.status.text, "adjusted from 09:00 to 19:00") {
		t.Fatalf("status = %q", m.status.text)
	}
}

func TestMouseDropKeepsTimeInSamePeriod(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "10:30"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	tx, ty := cellPoint(m, 5, period.Morning, 3)
	m = send(t, m, mouse(tea.MouseActionMotion, tx, ty))
	m, cmd := sendCmd(t, m, mouse(tea.MouseActionRelease, tx, ty))
	m = run(t, m, cmd)

	got, ok := m.ctrl.Task("a")
	if !ok || got.Time != period.MustParseClock("10:30") {
		t.Fatalf("task = %+v", got)
	}
	if loc, _ := m.ctrl.Locate("a"); loc.Day != 5 || loc.Period != period.Morning {
		t.Fatalf("location = %+v", loc)
	}
	if m.status.text != "" {
		t.Fatalf("status = %q, want none for an unadjusted move", m.status.text)
	}
}

func TestMouseClickOpensPopover(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	m = send(t, m, mouse(tea.MouseActionMotion, x+1, y))
	m, _ = sendCmd(t, m, mouse(tea.MouseActionRelease, x+1, y))

	if m.mode != ModePopover || m.popover == nil || m.popover.taskID != "a" {
		t.Fatalf("mode = %s", m.mode)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store calls = %v", repo.calls)
	}

	// The board ignores the pointer while the popover is open.
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	if m.ctrl.Drag() != nil {
		t.Fatal("press under a popover should not arm a drag")
	}
}

func TestMouseReleaseOutsideCancels(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	tx, ty := cellPoint(m, 2, period.Afternoon, 0)
	m = send(t, m, mouse(tea.MouseActionMotion, tx, ty))
	m, _ = sendCmd(t, m, mouse(tea.MouseActionRelease, 0, 0))

	if m.ctrl.Drag() != nil {
		t.Fatal("drag should be over")
	}
	if loc, _ := m.ctrl.Locate("a"); loc.Day != 0 || loc.Period != period.Morning {
		t.Fatalf("location = %+v, want origin", loc)
	}
	if m.status.text != "Move cancelled" {
		t.Fatalf("status = %q", m.status.text)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store calls = %v", repo.calls)
	}
}

func TestMouseDropOnOriginIsNoop(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	m = send(t, m, mouse(tea.MouseActionMotion, x+3, y+2))
	if !m.dragging() {
		t.Fatal("expected a drag")
	}
	m, cmd := sendCmd(t, m, mouse(tea.MouseActionRelease, x+3, y+2))

	if cmd != nil {
		t.Fatal("dropping on the origin cell should not sync")
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store calls = %v", repo.calls)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %s", m.mode)
	}
}

func TestMouseEscapeCancelsDrag(t *testing.T) {
	repo := newMemRepo(mkTask("a", 0, "09:00"))
	m := newTestModel(t, repo)

	x, y := cellPoint(m, 0, period.Morning, 0)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	m = send(t, m, mouse(tea.MouseActionMotion, x+20, y))
	m, _ = pressKey(t, m, "esc")
	if m.ctrl.Drag() != nil {
		t.Fatal("esc should cancel the drag")
	}

	// The release that follows finds nothing to drop.
	m, cmd := sendCmd(t, m, mouse(tea.MouseActionRelease, x+20, y))
	if cmd != nil || len(repo.calls) != 0 {
		t.Fatalf("unexpected sync, calls = %v", repo.calls)
	}
}

func TestMouseClickOnEmptyCellFocusesIt(t *testing.T) {
	m := newTestModel(t, newMemRepo(mkTask("a", 0, "09:00")))

	x, y := cellPoint(m, 4, period.Dawn, 2)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	if m.focus != (Position{Day: 4, Period: period.Dawn}) {
		t.Fatalf("focus = %+v", m.focus)
	}
	if m.ctrl.Drag() != nil {
		t.Fatal("empty cell should not arm a drag")
	}

	// A press below the first task line of a filled cell does not pick it up.
	x, y = cellPoint(m, 0, period.Morning, 3)
	m = send(t, m, mouse(tea.MouseActionPress, x, y))
	if m.ctrl.Drag() != nil {
		t.Fatal("blank line should not arm a drag")
	}
	if m.focus != (Position{Day: 0, Period: period.Morning}) {
		t.Fatalf("focus = %+v", m.focus)
	}
}

func TestMouseDragBlocksTaskKeys(t *testing.T) {
	for _, key := range []string{" ", "x", "enter", "e", "n", "a", "d", "m"} {
		t.Run(key, func(t *testing.T) {
			repo := newMemRepo(mkTask("a", 0, "09:00"))
			m := newTestModel(t, repo)

			x, y := cellPoint(m, 0, period.Morning, 0)
			m = send(t, m, mouse(tea.MouseActionPress, x, y))
			m, cmd := pressKey(t, m, key)
			if cmd != nil || m.mode != ModeNormal {
				t.Fatalf("armed drag: key ran, mode = %s", m.mode)
			}

			m = send(t, m, mouse(tea.MouseActionMotion, x+20, y))
			m, cmd = pressKey(t, m, key)
			if cmd != nil || m.mode != ModeNormal {
				t.Fatalf("dragging: key ran, mode = %s", m.mode)
			}
			if s := m.ctrl.Drag(); s == nil || !s.Dragging() {
				t.Fatal("drag should survive the key")
			}
			got, ok := m.ctrl.Task("a")
			if !ok || got.IsCompleted() {
				t.Fatalf("task changed during drag: %+v", got)
			}

			m, cmd = sendCmd(t, m, mouse(tea.MouseActionRelease, x+20, y))
			m = run(t, m, cmd)
			if len(repo.calls) != 1 || repo.calls[0] != "place" {
				t.Fatalf("calls = %v, want one placement", repo.calls)
			}
			if stored := repo.tasks["a"]; !stored.Date.Equal(monday.AddDate(0, 0, 1)) {
				t.Fatalf("stored date = %s", stored.Date)
			}
		})
	}
}
