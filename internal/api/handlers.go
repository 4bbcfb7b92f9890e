package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// ListResponse is the body of GET /api/tasks.
type ListResponse struct {
	Tasks []task.Record `json:"tasks"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleList(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")

	var (
		tasks []*task.Task
		err   error
	)
	switch {
	case start == "" && end == "":
		tasks, err = s.repo.ListAllTasks(c.Request.Context())
	case start == "" || end == "":
		s.fail(c, http.StatusBadRequest, errors.New("start and end must be given together"))
		return
	default:
		from, perr := dateutil.ParseDate(start)
		if perr != nil {
			s.fail(c, http.StatusBadRequest, perr)
			return
		}
		to, perr := dateutil.ParseDate(end)
		if perr != nil {
			s.fail(c, http.StatusBadRequest, perr)
			return
		}
		tasks, err = s.repo.FetchWeekTasks(c.Request.Context(), from, to)
	}
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	resp := ListResponse{Tasks: make([]task.Record, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, task.NewRecord(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGet(c *gin.Context) {
	t, err := s.repo.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, task.NewRecord(t))
}

func (s *Server) handleCreate(c *gin.Context) {
	var rec task.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	t, err := rec.Task()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.CreateTask(c.Request.Context(), t); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusCreated, task.NewRecord(t))
}

func (s *Server) handleUpdatePlacement(c *gin.Context) {
	var rec task.PlacementRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	p, err := rec.Placement()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.UpdateTaskPlacement(c.Request.Context(), c.Param("id"), p); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUpdateFields(c *gin.Context) {
	var rec task.FieldsRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	f, err := rec.Fields()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.repo.UpdateTaskFields(c.Request.Context(), c.Param("id"), f); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.repo.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrDuplicateTask):
		return http.StatusConflict
	case errors.Is(err, task.ErrPeriodMismatch),
		errors.Is(err, task.ErrEmptyID),
		errors.Is(err, task.ErrEmptyName),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, period.ErrInvalidClock),
		errors.Is(err, period.ErrInvalidPeriod),
		errors.Is(err, dateutil.ErrInvalidDateFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
