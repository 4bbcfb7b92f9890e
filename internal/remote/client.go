// Package remote implements task.Repository against a weekboard store server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/javiermolinar/weekboard/internal/api"
	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// ErrRejected is returned when the server refuses a request for a reason
// that has no matching domain error.
var ErrRejected = errors.New("request rejected by server")

// Client talks to the REST API served by `weekboard serve`.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid remote url %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchWeekTasks returns all tasks dated within the range (inclusive).
// Entries the client cannot decode are logged and skipped.
func (c *Client) FetchWeekTasks(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	q := url.Values{}
	q.Set("start", dateutil.Format(start))
	q.Set("end", dateutil.Format(end))
	return c.list(ctx, "/api/tasks?"+q.Encode())
}

// ListAllTasks returns every task.
func (c *Client) ListAllTasks(ctx context.Context) ([]*task.Task, error) {
	return c.list(ctx, "/api/tasks")
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*task.Task, error) {
	var rec task.Record
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &rec); err != nil {
		return nil, err
	}
	return rec.Task()
}

// CreateTask adds a new task.
func (c *Client) CreateTask(ctx context.Context, t *task.Task) error {
	return c.do(ctx, http.MethodPost, "/api/tasks", task.NewRecord(t), nil)
}

// UpdateTaskPlacement moves a task to a new date, period and time.
func (c *Client) UpdateTaskPlacement(ctx context.Context, id string, p task.Placement) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, taskPath(id)+"/placement", task.NewPlacementRecord(p), nil)
}

// UpdateTaskFields applies a partial update.
func (c *Client) UpdateTaskFields(ctx context.Context, id string, f task.Fields) error {
	return c.do(ctx, http.MethodPatch, taskPath(id), task.NewFieldsRecord(f), nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) list(ctx context.Context, path string) ([]*task.Task, error) {
	var resp struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(resp.Tasks))
	for _, raw := range resp.Tasks {
		var rec task.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.logger.Warn("skipping undecodable task", "error", err)
			continue
		}
		t, err := rec.Task()
		if err != nil {
			c.logger.Warn("skipping malformed task", "id", rec.ID, "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns an error response back into the domain error it came from.
func decodeError(resp *http.Response) error {
	var body api.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
		if body.Error == "" {
			body.Error = resp.Status
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, body.Error)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", task.ErrDuplicateTask, body.Error)
	case http.StatusBadRequest:
		for _, sentinel := range []error{
			task.ErrPeriodMismatch,
			task.ErrEmptyID,
			task.ErrEmptyName,
			task.ErrInvalidPriority,
			task.ErrInvalidStatus,
			period.ErrInvalidClock,
			period.ErrInvalidPeriod,
			dateutil.ErrInvalidDateFormat,
		} {
			if strings.Contains(body.Error, sentinel.Error()) {
				return fmt.Errorf("%w: %s", sentinel, body.Error)
			}
		}
	}
	return fmt.Errorf("%w (%d): %s", ErrRejected, resp.StatusCode, body.Error)
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}
