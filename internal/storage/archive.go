package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendwatch/internal/core"

	_ "modernc.org/sqlite"
)

// Archive is a reporting-side SQLite mirror of the record file, keyed by
// record position. The JSON file stays the source of truth; the archive is
// rebuilt row by row from record events and is safe to throw away.
type Archive struct {
	db *sql.DB
}

func NewArchive(dbPath string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Upsert writes the record at the given store position, replacing any
// earlier snapshot of the same position.
func (a *Archive) Upsert(ctx context.Context, position int, r core.Record) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO record_archive
			(position, name, amount, category, usage_frequency, usage_minutes, created_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(position) DO UPDATE SET
			name            = excluded.name,
			amount          = excluded.amount,
			category        = excluded.category,
			usage_frequency = excluded.usage_frequency,
			usage_minutes   = excluded.usage_minutes,
			created_at      = excluded.created_at,
			archived_at     = CURRENT_TIMESTAMP`,
		position, r.Name, r.Amount, r.Category, r.UsageFrequency, r.UsageMinutes, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert archived record: %w", err)
	}

	slog.InfoContext(ctx, "Record archived",
		"position", position,
		"name", r.Name,
		"usage_minutes", r.UsageMinutes)
	return nil
}

// Count returns the number of archived positions.
func (a *Archive) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM record_archive`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count archived records: %w", err)
	}
	return n, nil
}
