package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// WAL mode and the other pragmas are configured in db.go.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if err := createProgramsTable(ctx, db); err != nil {
		return err
	}
	if err := createDailyContentTable(ctx, db); err != nil {
		return err
	}
	if err := createDayThemesTable(ctx, db); err != nil {
		return err
	}
	if err := createEfemeridesTable(ctx, db); err != nil {
		return err
	}
	return createConmemoracionesTable(ctx, db)
}

func createProgramsTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS programs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		air_time TEXT NOT NULL DEFAULT '',
		air_days TEXT NOT NULL DEFAULT '[]',
		active INTEGER NOT NULL DEFAULT 1,
		category TEXT NOT NULL DEFAULT 'general',
		topic_calendar TEXT,
		genre TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_programs_name ON programs(name);
	CREATE INDEX IF NOT EXISTS idx_programs_active ON programs(active);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create programs table: %w", err)
	}
	return nil
}

func createDailyContentTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_content (
		program_id TEXT NOT NULL,
		content_key TEXT NOT NULL,
		theme TEXT NOT NULL DEFAULT '',
		ideas TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (program_id, content_key),
		FOREIGN KEY (program_id) REFERENCES programs(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_daily_content_key ON daily_content(content_key);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create daily_content table: %w", err)
	}
	return nil
}

func createDayThemesTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS day_themes (
		content_key TEXT PRIMARY KEY,
		theme TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create day_themes table: %w", err)
	}
	return nil
}

func createEfemeridesTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS efemerides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		month TEXT NOT NULL,
		day INTEGER NOT NULL,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_efemerides_month_day ON efemerides(month, day);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create efemerides table: %w", err)
	}
	return nil
}

func createConmemoracionesTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS conmemoraciones (
		month TEXT NOT NULL,
		day INTEGER NOT NULL,
		national TEXT NOT NULL DEFAULT '',
		international TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (month, day)
	);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create conmemoraciones table: %w", err)
	}
	return nil
}
