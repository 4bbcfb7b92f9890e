package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			icon       TEXT NOT NULL DEFAULT '',
			date       DATE NOT NULL,
			time       TEXT NOT NULL,
			period     TEXT NOT NULL CHECK(period IN ('dawn', 'morning', 'afternoon', 'evening')),
			priority   INTEGER NOT NULL DEFAULT 1 CHECK(priority BETWEEN 0 AND 3),
			status     TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date, time);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tasks table: %w", err)
	}

	return nil
}
