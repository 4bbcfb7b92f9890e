package tui

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/config"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/commands"
)

// Monday, January 13, 2025
var monday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)

// Wednesday 10:00 of the same week
var wednesdayMorning = monday.AddDate(0, 0, 2).Add(10 * time.Hour)

var errStore = errors.New("store unavailable")

func mkTask(id string, day int, clock string) *task.Task {
	return &task.Task{
		ID:       id,
		Name:     "task " + id,
		Time:     period.MustParseClock(clock),
		Date:     monday.AddDate(0, 0, day),
		Priority: task.PriorityMedium,
		Status:   task.StatusPending,
	}
}

// memRepo is an in-memory task.Repository. When err is set every mutating
// call fails with it.
type memRepo struct {
	tasks map[string]*task.Task
	err   error
	calls []string
}

func newMemRepo(tasks ...*task.Task) *memRepo {
	r := &memRepo{tasks: make(map[string]*task.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t.Clone()
	}
	return r
}

func (r *memRepo) FetchWeekTasks(_ context.Context, start, end time.Time) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range r.tasks {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) GetTask(_ context.Context, id string) (*task.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (r *memRepo) CreateTask(_ context.Context, t *task.Task) error {
	r.calls = append(r.calls, "create")
	if r.err != nil {
		return r.err
	}
	r.tasks[t.ID] = t.Clone()
	return nil
}

func (r *memRepo) UpdateTaskPlacement(_ context.Context, id string, p task.Placement) error {
	r.calls = append(r.calls, "place")
	if r.err != nil {
		return r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	t.Date = p.Date
	t.Time = p.Time
	return nil
}

func (r *memRepo) UpdateTaskFields(_ context.Context, id string, f task.Fields) error {
	r.calls = append(r.calls, "fields")
	if r.err != nil {
		return r.err
	}
	t, ok := r.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	f.ApplyTo(t)
	return nil
}

func (r *memRepo) DeleteTask(_ context.Context, id string) error {
	r.calls = append(r.calls, "delete")
	if r.err != nil {
		return r.err
	}
	delete(r.tasks, id)
	return nil
}

func (r *memRepo) ListAllTasks(ctx context.Context) ([]*task.Task, error) {
	return r.FetchWeekTasks(ctx, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.Local))
}

func (r *memRepo) Close() error { return nil }

// newTestModel returns a 120x40 model with the current week loaded.
func newTestModel(t *testing.T, repo *memRepo) Model {
	t.Helper()
	m := New(context.Background(), repo, config.Default(), WithNow(func() time.Time { return wednesdayMorning }))
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = run(t, m, m.Init())
	if m.loading {
		t.Fatal("week still loading after Init")
	}
	return m
}

// send feeds one message to the model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return model
}

// sendCmd feeds one message and returns the command it produced.
func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return model, cmd
}

// run executes cmd and feeds its messages back, skipping timers and
// anything the model does not handle.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		var next tea.Cmd
		m, next = sendCmd(t, m, msg)
		m = run(t, m, next)
	}
	return m
}

// collect runs cmd, expanding batches. Commands that do not answer quickly
// are timers (status clearing, cursor blink) and are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pressKey sends a key by name, e.g. "enter", "j" or "ctrl+c".
func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	return sendCmd(t, m, keyMsg(key))
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// typeText types s into the focused input.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = pressKey(t, m, string(r))
	}
	return m
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

// cellPoint returns a screen position on line of a cell.
func cellPoint(m Model, day int, p period.Period, line int) (int, int) {
	l := m.layoutCache
	return l.DayX(day) + 2, l.PeriodY(p) + line
}

// swapClipboard replaces the clipboard writer and returns a restore func.
func swapClipboard(write func(string) error) func() {
	prev := commands.WriteClipboard
	commands.WriteClipboard = write
	return func() { commands.WriteClipboard = prev }
}
