package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"thrivehub/internal/modules/reflection/domain"
	reflectionout "thrivehub/internal/modules/reflection/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteReflectionProjector struct {
	db *sql.DB
}

func NewSQLiteReflectionProjector(dbPath string) (reflectionout.ReflectionIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteReflectionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteReflectionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS reflections (
  seq INTEGER PRIMARY KEY,
  timestamp TEXT NOT NULL,
  reflection TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reflections table: %w", err)
	}
	return nil
}

func (s *SQLiteReflectionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reflections`); err != nil {
		return fmt.Errorf("reset reflections: %w", err)
	}
	return nil
}

func (s *SQLiteReflectionProjector) Insert(ctx context.Context, seq int, entry domain.Entry) error {
	const stmt = `
INSERT INTO reflections (seq, timestamp, reflection)
VALUES (?, ?, ?)
ON CONFLICT(seq) DO UPDATE SET
  timestamp=excluded.timestamp,
  reflection=excluded.reflection;
`
	if _, err := s.db.ExecContext(ctx, stmt, seq, entry.Timestamp.Format(time.RFC3339Nano), entry.Text); err != nil {
		return fmt.Errorf("insert reflection: %w", err)
	}
	return nil
}

func (s *SQLiteReflectionProjector) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reflections`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reflections: %w", err)
	}
	return n, nil
}

func (s *SQLiteReflectionProjector) Close() error {
	return s.db.Close()
}
