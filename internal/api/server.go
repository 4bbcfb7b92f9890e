// Package api serves a task.Repository over a JSON REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Server is the weekboard store server.
type Server struct {
	repo   task.Repository
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a server backed by repo.
func NewServer(repo task.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		repo:   repo,
		router: router,
		logger: logger,
	}
	router.Use(s.logRequests)

	router.GET("/healthz", s.handleHealth)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleList)
		api.POST("/tasks", s.handleCreate)
		api.GET("/tasks/:id", s.handleGet)
		api.PATCH("/tasks/:id", s.handleUpdateFields)
		api.PUT("/tasks/:id/placement", s.handleUpdatePlacement)
		api.DELETE("/tasks/:id", s.handleDelete)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
