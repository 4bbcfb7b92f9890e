package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/config"
	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/notify"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui/commands"
	"github.com/javiermolinar/weekboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal        Mode = iota
	ModeMove               // A task is lifted and follows the arrow keys
	ModePopover            // Creating or editing a task
	ModeConfirmDelete      // Waiting for a delete confirmation
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMove:
		return "move"
	case ModePopover:
		return "popover"
	case ModeConfirmDelete:
		return "confirm-delete"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// statusTTL is how long a status message stays on screen.
const statusTTL = 4 * time.Second

// Position is the keyboard focus: a cell and a task inside it.
type Position struct {
	Day    int // 0=Monday, 6=Sunday
	Period period.Period
	Index  int
}

// statusLine is shared by every copy of the model so the controller's
// notifier can write to it.
type statusLine struct {
	kind notify.Kind
	text string
	at   time.Time
}

func (s *statusLine) set(kind notify.Kind, text string, at time.Time) {
	s.kind = kind
	s.text = text
	s.at = at
}

func (s *statusLine) clear() {
	*s = statusLine{}
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx    context.Context
	repo   task.Repository
	ctrl   *board.Controller
	config *config.Config
	logger *slog.Logger
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	mode     Mode
	focus    Position
	wantWeek time.Time // Monday of the week last asked for
	loading  bool

	// Popover state
	popover   *popoverState
	confirmID string
	overlay   OverlayModel

	status *statusLine

	// Terminal dimensions and layout
	width       int
	height      int
	layoutCache LayoutCache
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model showing the current week.
func New(ctx context.Context, repo task.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}

	m := Model{
		ctx:     ctx,
		repo:    repo,
		config:  cfg,
		logger:  logging.Discard(),
		now:     time.Now,
		theme:   t,
		styles:  NewStyles(t),
		mode:    ModeNormal,
		overlay: NewOverlayModel(),
		status:  &statusLine{},
	}
	for _, opt := range opts {
		opt(&m)
	}

	status := m.status
	now := m.now
	m.ctrl = board.NewController(repo,
		board.WithLogger(m.logger),
		board.WithNotifier(notify.Multi(
			notify.Func(func(kind notify.Kind, msg string) { status.set(kind, msg, now()) }),
			notify.Log(m.logger),
		)),
		board.WithDragThreshold(cfg.Board.DragThreshold),
	)
	m.overlay.SetBackground(m.styles.ModalBgColor)

	today := m.now()
	m.wantWeek = task.StartOfWeek(today)
	m.focus = Position{Day: dateutil.WeekdayIndex(today), Period: period.Classify(period.NewClock(today.Hour(), today.Minute()))}
	m.loading = true
	m.layoutCache = m.buildLayoutCache(0, 0)
	return m
}

// Init loads the current week.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.ctx, m.repo, m.wantWeek)
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, repo task.Repository, cfg *config.Config, logger *slog.Logger) error {
	m := New(ctx, repo, cfg, WithLogger(logger))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
