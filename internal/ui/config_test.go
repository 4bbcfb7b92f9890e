package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/weekboard/internal/config"
)

func TestConfigInteractiveCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	if err := runConfigInteractive(strings.NewReader("n\n"), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"No config file found", "[board]", "drag_threshold = 2", "[storage]", "backend        = sqlite"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestConfigInteractiveEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// Answers: edit, threshold, backend, db path, remote url, timeout,
	// server addr, an unknown theme then a valid one, log level, log file.
	input := "y\n5\n\n\n\n\n:9090\nneon\nlatte\ndebug\n\n"
	var out bytes.Buffer

	if err := runConfigInteractive(strings.NewReader(input), &out, path); err != nil {
		t.Fatalf("runConfigInteractive: %v", err)
	}
	if !strings.Contains(out.String(), `Invalid theme "neon"`) {
		t.Errorf("unknown theme not reported:\n%s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Board.DragThreshold != 5 || cfg.Server.Addr != ":9090" || cfg.UI.Theme != "latte" || cfg.Log.Level != "debug" {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestConfigSubcommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekboard.toml")
	app, out := newTestApp(t, openRepo(t))

	got := execute(t, app, out, "config", "init", "--file="+path)
	if !strings.Contains(got, "Created "+path) {
		t.Fatalf("init output = %q", got)
	}

	app.SetArgs([]string{"config", "init", "--file=" + path})
	if err := app.Execute(); err == nil {
		t.Fatal("init over an existing file should fail")
	}

	got = execute(t, app, out, "config", "path", "--file="+path)
	if strings.TrimSpace(got) != path {
		t.Fatalf("path output = %q", got)
	}

	got = execute(t, app, out, "config", "show", "--file="+path)
	if !strings.Contains(got, "theme          = frappe") {
		t.Fatalf("show output = %q", got)
	}
}
