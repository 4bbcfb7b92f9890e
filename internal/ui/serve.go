package ui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekboard/internal/api"
	"github.com/javiermolinar/weekboard/internal/db"
	"github.com/javiermolinar/weekboard/internal/logging"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local database over HTTP",
		Long: `Serve the local SQLite database as a REST API.

Other weekboard clients use it with storage.backend = "remote" and
storage.remote_url pointing at this address. The server always serves the
SQLite database at storage.db_path, whatever backend is configured.`,
		Example: `  weekboard serve
  weekboard serve --addr=127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.config.Server.Addr
			}

			level := a.config.Log.Level
			if a.debug {
				level = "debug"
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			logger, closeLog, err := logging.New(logging.Options{Level: level, File: a.config.Log.File, Stderr: true})
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			store, err := db.New(a.config.Storage.DBPath, db.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(store, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	return cmd
}
