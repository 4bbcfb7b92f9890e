package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/weekboard/internal/config"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// newTestApp returns an app over repo whose output is captured.
func newTestApp(t *testing.T, repo task.Repository) (*App, *bytes.Buffer) {
	t.Helper()
	DisableColor()
	t.Cleanup(EnableColor)

	app := NewApp(repo, config.Default())
	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	return app, &out
}

func execute(t *testing.T, app *App, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	app.SetArgs(args)
	if err := app.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func onlyTask(t *testing.T, repo task.Repository) *task.Task {
	t.Helper()
	all, err := repo.ListAllTasks(context.Background())
	if err != nil {
		t.Fatalf("ListAllTasks: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("tasks = %d, want 1", len(all))
	}
	return all[0]
}

func TestCommandsWalkATask(t *testing.T) {
	repo := openRepo(t)
	app, out := newTestApp(t, repo)

	got := execute(t, app, out, "add", "Gym", "--date=2025-01-15", "--period=evening", "--icon=🏋")
	if !strings.Contains(got, "2025-01-15 Evening 19:00") {
		t.Fatalf("add output = %q", got)
	}
	created := onlyTask(t, repo)
	short := shortID(created.ID)

	got = execute(t, app, out, "list", "--week=2025-01-13")
	for _, want := range []string{"Week of 2025-01-13 – 2025-01-19", "Wednesday 2025-01-15", "0/1 done", "Evening", "19:00", "Gym"} {
		if !strings.Contains(got, want) {
			t.Errorf("list missing %q:\n%s", want, got)
		}
	}

	got = execute(t, app, out, "move", short, "2025-01-16", "morning")
	if !strings.Contains(got, `Moved "Gym" to 2025-01-16 Morning at 09:00`) {
		t.Errorf("move output = %q", got)
	}
	if !strings.Contains(got, "time adjusted from 19:00 to 09:00") {
		t.Errorf("move should report the adjusted time: %q", got)
	}
	moved := onlyTask(t, repo)
	if moved.Period() != period.Morning || moved.Date.Day() != 16 {
		t.Fatalf("moved = %+v", moved)
	}

	got = execute(t, app, out, "move", short, "2025-01-16", "morning")
	if !strings.Contains(got, "already on 2025-01-16 morning") {
		t.Errorf("same-cell move output = %q", got)
	}

	got = execute(t, app, out, "edit", short, "--time=10:45", "--priority=high")
	if !strings.Contains(got, `Saved "Gym"`) {
		t.Errorf("edit output = %q", got)
	}
	if e := onlyTask(t, repo); e.Time != period.MustParseClock("10:45") || e.Priority != task.PriorityHigh {
		t.Fatalf("edited = %+v", e)
	}

	got = execute(t, app, out, "toggle", short)
	if !strings.Contains(got, `✓ "Gym" is completed`) {
		t.Errorf("toggle output = %q", got)
	}

	got = execute(t, app, out, "delete", short)
	if !strings.Contains(got, `Deleted "Gym"`) {
		t.Errorf("delete output = %q", got)
	}
	all, _ := repo.ListAllTasks(context.Background())
	if len(all) != 0 {
		t.Fatalf("tasks left = %d", len(all))
	}
}

func TestAddNeedsTimeOrPeriod(t *testing.T) {
	app, _ := newTestApp(t, openRepo(t))
	app.SetArgs([]string{"add", "Gym", "--date=2025-01-15"})
	if err := app.Execute(); err == nil {
		t.Fatal("expected an error")
	}
}

func TestResolveTask(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	for _, id := range []string{"abc1", "abc2", "xyz9"} {
		if err := repo.CreateTask(ctx, mustTask(t, id, "task "+id, "2025-01-15", "09:00")); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}
	app, _ := newTestApp(t, repo)

	tests := []struct {
		id      string
		want    string
		wantErr error
	}{
		{"abc1", "abc1", nil},
		{"xy", "xyz9", nil},
		{"  xyz9 ", "xyz9", nil},
		{"abc", "", ErrAmbiguousID},
		{"nope", "", task.ErrTaskNotFound},
		{"", "", task.ErrEmptyID},
	}
	for _, tt := range tests {
		got, err := app.resolveTask(ctx, tt.id)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveTask(%q) err = %v, want %v", tt.id, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveTask(%q) err = %v", tt.id, err)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("resolveTask(%q) = %s, want %s", tt.id, got.ID, tt.want)
		}
	}
}

func TestResolveClock(t *testing.T) {
	tests := []struct {
		clock, per string
		want       string
		wantErr    bool
	}{
		{"09:30", "", "09:30", false},
		{"", "evening", "19:00", false},
		{"", "dawn", "04:00", false},
		{"13:15", "afternoon", "13:15", false},
		{"13:15", "morning", "", true},
		{"", "", "", true},
		{"25:00", "", "", true},
		{"", "noon", "", true},
	}
	for _, tt := range tests {
		got, err := resolveClock(tt.clock, tt.per)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveClock(%q, %q) = %s, want error", tt.clock, tt.per, got)
			}
			continue
		}
		if err != nil || got.String() != tt.want {
			t.Errorf("resolveClock(%q, %q) = %s, %v, want %s", tt.clock, tt.per, got, err, tt.want)
		}
	}
}

func TestEditFields(t *testing.T) {
	str := func(s string) *string { return &s }

	f, err := editFields(nil, nil, nil, nil, nil)
	if err != nil || !f.IsEmpty() {
		t.Fatalf("empty = %+v, %v", f, err)
	}

	f, err = editFields(str("Run"), str(""), str("06:00"), str("low"), str("completed"))
	if err != nil {
		t.Fatalf("editFields: %v", err)
	}
	if *f.Name != "Run" || *f.Icon != "" || *f.Time != period.MustParseClock("06:00") ||
		*f.Priority != task.PriorityLow || *f.Status != task.StatusCompleted {
		t.Fatalf("fields = %+v", f)
	}

	for _, bad := range [][5]*string{
		{nil, nil, str("6pm"), nil, nil},
		{nil, nil, nil, str("urgent"), nil},
		{nil, nil, nil, nil, str("done")},
		{str("  "), nil, nil, nil, nil},
	} {
		if _, err := editFields(bad[0], bad[1], bad[2], bad[3], bad[4]); err == nil {
			t.Errorf("editFields(%v) should fail", bad)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}
