package ui

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/config"
	"github.com/javiermolinar/weekboard/internal/db"
	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/remote"
	"github.com/javiermolinar/weekboard/internal/task"
	"github.com/javiermolinar/weekboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     task.Repository
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	noColor  bool
	logger   *slog.Logger
	closeLog func() error
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened lazily from the configured storage backend.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: logging.Discard()}

	a.root = &cobra.Command{
		Use:   "weekboard",
		Short: "A weekly task board for the terminal",
		Long: `Weekboard is a weekly task board.

Tasks live in a grid of seven days and four periods (dawn, morning,
afternoon, evening). Drag a task to another cell with the mouse, or
pick it up with 'm' and move it with the arrow keys.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			return a.setupLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a.repo, a.config, a.logger)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.toggleCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) setupLogging() error {
	if a.closeLog != nil {
		return nil
	}
	opts := logging.Options{Level: a.config.Log.Level, File: a.config.Log.File}
	if a.debug {
		opts.Level = "debug"
		if opts.File == "" {
			opts.File = logging.DebugLogPath
		}
	}
	logger, closeFn, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeFn
	return nil
}

// ensureRepo opens the configured store unless a repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	switch a.config.Storage.Backend {
	case config.BackendRemote:
		client, err := remote.New(a.config.Storage.RemoteURL, a.config.Timeout(), remote.WithLogger(a.logger))
		if err != nil {
			return fmt.Errorf("connecting to remote store: %w", err)
		}
		a.repo = client
	default:
		store, err := db.New(a.config.Storage.DBPath, db.WithLogger(a.logger))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		a.repo = store
	}
	a.logger.Debug("store opened", "backend", a.config.Storage.Backend)
	return nil
}

// SetArgs overrides the command line arguments. Used by tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var err error
	if a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
	}
	if a.closeLog != nil {
		if cerr := a.closeLog(); err == nil {
			err = cerr
		}
		a.closeLog = nil
	}
	return err
}
