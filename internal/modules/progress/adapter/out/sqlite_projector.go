package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"thrivehub/internal/modules/progress/domain"
	progressout "thrivehub/internal/modules/progress/port/out"
	"thrivehub/internal/platform/calendar"

	_ "modernc.org/sqlite"
)

type SQLiteProgressProjector struct {
	db *sql.DB
}

func NewSQLiteProgressProjector(dbPath string) (progressout.ProgressIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteProgressProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteProgressProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS progress (
  seq INTEGER PRIMARY KEY,
  date TEXT NOT NULL,
  progress INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create progress table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS progress_date ON progress(date)`); err != nil {
		return fmt.Errorf("create progress index: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM progress`); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (s *SQLiteProgressProjector) Insert(ctx context.Context, seq int, entry domain.Entry) error {
	const stmt = `
INSERT INTO progress (seq, date, progress)
VALUES (?, ?, ?)
ON CONFLICT(seq) DO UPDATE SET
  date=excluded.date,
  progress=excluded.progress;
`
	if _, err := s.db.ExecContext(ctx, stmt, seq, entry.Date.String(), entry.Value); err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

// Entries reads the projection back in seq order.
func (s *SQLiteProgressProjector) Entries(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, progress FROM progress ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()
	out := []domain.Entry{}
	for rows.Next() {
		var raw string
		var value int
		if err := rows.Scan(&raw, &value); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		date, err := calendar.Parse(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Entry{Date: date, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func (s *SQLiteProgressProjector) Close() error {
	return s.db.Close()
}
