// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/logging"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

const taskColumns = `id, name, icon, date, time, period, priority, status, created_at`

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLogger sets the logger used to report skipped rows.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SQLite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Icon,
		dateutil.Format(t.Date),
		t.Time.String(),
		t.Period().String(),
		int(t.Priority),
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", task.ErrDuplicateTask, t.ID)
		}
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// CreateTasks adds multiple tasks in a batch using a transaction.
func (s *SQLite) CreateTasks(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %q: %w", t.Name, err)
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			t.ID,
			t.Name,
			t.Icon,
			dateutil.Format(t.Date),
			t.Time.String(),
			t.Period().String(),
			int(t.Priority),
			string(t.Status),
			t.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", task.ErrDuplicateTask, t.ID)
			}
			return fmt.Errorf("inserting task %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading task %s: %w", id, err)
	}
	return t, nil
}

// FetchWeekTasks returns all tasks dated within the range (inclusive).
// Rows that cannot be decoded are logged and skipped.
func (s *SQLite) FetchWeekTasks(ctx context.Context, start, end time.Time) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE date >= ? AND date <= ?
		ORDER BY date, time
	`
	return s.queryTasks(ctx, query, dateutil.Format(start), dateutil.Format(end))
}

// ListAllTasks returns every task ordered by date and time.
func (s *SQLite) ListAllTasks(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY date, time`
	return s.queryTasks(ctx, query)
}

// UpdateTaskPlacement moves a task to a new date, period and time.
func (s *SQLite) UpdateTaskPlacement(ctx context.Context, id string, p task.Placement) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query := `UPDATE tasks SET date = ?, time = ?, period = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		dateutil.Format(p.Date),
		p.Time.String(),
		p.Period.String(),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task placement: %w", err)
	}
	return requireRow(result, id)
}

// UpdateTaskFields applies a partial update. The period column follows the time.
func (s *SQLite) UpdateTaskFields(ctx context.Context, id string, f task.Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.IsEmpty() {
		if _, err := s.GetTask(ctx, id); err != nil {
			return err
		}
		return nil
	}

	var (
		sets []string
		args []any
	)
	if f.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*f.Name))
	}
	if f.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, strings.TrimSpace(*f.Icon))
	}
	if f.Time != nil {
		sets = append(sets, "time = ?", "period = ?")
		args = append(args, f.Time.String(), period.Classify(*f.Time).String())
	}
	if f.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, int(*f.Priority))
	}
	if f.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*f.Status))
	}
	args = append(args, id)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating task fields: %w", err)
	}
	return requireRow(result, id)
}

// DeleteTask removes a task.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(result, id)
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			var bad *rowError
			if errors.As(err, &bad) {
				s.logger.Warn("skipping malformed task row", "id", bad.id, "error", bad.err)
				continue
			}
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// rowError marks a row that was read but could not be decoded into a task.
type rowError struct {
	id  string
	err error
}

func (e *rowError) Error() string { return fmt.Sprintf("task %s: %v", e.id, e.err) }
func (e *rowError) Unwrap() error { return e.err }

func scanTask(row scanner) (*task.Task, error) {
	var (
		t         task.Task
		date      string
		clock     string
		stored    string
		priority  int
		status    string
		createdAt sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Icon,
		&date,
		&clock,
		&stored,
		&priority,
		&status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Date, err = parseDate(date); err != nil {
		return nil, &rowError{id: t.ID, err: fmt.Errorf("parsing date: %w", err)}
	}
	if t.Time, err = period.ParseClock(clock); err != nil {
		return nil, &rowError{id: t.ID, err: fmt.Errorf("parsing time: %w", err)}
	}
	p, err := period.Parse(stored)
	if err != nil {
		return nil, &rowError{id: t.ID, err: err}
	}
	if p != t.Period() {
		return nil, &rowError{id: t.ID, err: fmt.Errorf("%w: %s stored as %s", task.ErrPeriodMismatch, t.Time, p)}
	}
	t.Priority = task.Priority(priority)
	t.Status = task.Status(status)
	if err := t.Validate(); err != nil {
		return nil, &rowError{id: t.ID, err: err}
	}
	if createdAt.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
			t.CreatedAt = ts
		} else if ts, err := parseDate(createdAt.String); err == nil {
			t.CreatedAt = ts
		}
	}

	return &t, nil
}

func requireRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: tasks.id")
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite may hand DATE columns back as "2006-01-02T00:00:00Z"; keep them as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
