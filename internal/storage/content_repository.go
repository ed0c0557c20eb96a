package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
)

// GetDailyContent retrieves one program's content for a single key.
// Returns ErrNotFound when the key has never been written. Key fallback
// logic (legacy two-part keys) belongs to the planner, which calls
// GetProgramContent and resolves in memory.
func (db *DB) GetDailyContent(ctx context.Context, programID, key string) (*agenda.DailyContent, error) {
	var c agenda.DailyContent
	err := db.conn.QueryRowContext(ctx, `
		SELECT theme, ideas, instructions FROM daily_content
		WHERE program_id = ? AND content_key = ?
	`, programID, key).Scan(&c.Theme, &c.Ideas, &c.Instructions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domerrors.ErrNotFound
	}
	if err != nil {
		return nil, domerrors.NewStoreError("get_daily_content", key, err)
	}
	return &c, nil
}

// GetProgramContent returns all of a program's content keyed by content key.
func (db *DB) GetProgramContent(ctx context.Context, programID string) (map[string]agenda.DailyContent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT content_key, theme, ideas, instructions FROM daily_content
		WHERE program_id = ?
	`, programID)
	if err != nil {
		return nil, domerrors.NewStoreError("get_program_content", programID, err)
	}
	defer func() { _ = rows.Close() }()

	content := make(map[string]agenda.DailyContent)
	for rows.Next() {
		var (
			key string
			c   agenda.DailyContent
		)
		if err := rows.Scan(&key, &c.Theme, &c.Ideas, &c.Instructions); err != nil {
			return nil, domerrors.NewStoreError("scan_daily_content", programID, err)
		}
		content[key] = c
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewStoreError("iterate_daily_content", programID, err)
	}
	return content, nil
}

// SaveDailyContent inserts or replaces one content entry.
func (db *DB) SaveDailyContent(ctx context.Context, programID, key string, content agenda.DailyContent) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_content (program_id, content_key, theme, ideas, instructions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, programID, key, content.Theme, content.Ideas, content.Instructions, time.Now().Unix())
	if err != nil {
		return domerrors.NewStoreError("save_daily_content", key, err)
	}
	return nil
}

// DeleteContentByPrefixes deletes every content row whose key starts with
// one of the given prefixes, across all programs. Returns the number of
// deleted rows.
func (db *DB) DeleteContentByPrefixes(ctx context.Context, prefixes []string) (int, error) {
	return db.deleteByPrefixes(ctx, "daily_content", "content_key", prefixes)
}

// GetDayTheme retrieves the central theme for a key. Returns ErrNotFound
// when unset.
func (db *DB) GetDayTheme(ctx context.Context, key string) (string, error) {
	var theme string
	err := db.conn.QueryRowContext(ctx,
		"SELECT theme FROM day_themes WHERE content_key = ?", key).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domerrors.ErrNotFound
	}
	if err != nil {
		return "", domerrors.NewStoreError("get_day_theme", key, err)
	}
	return theme, nil
}

// GetAllDayThemes returns the full day-theme map.
func (db *DB) GetAllDayThemes(ctx context.Context) (agenda.DayThemes, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT content_key, theme FROM day_themes")
	if err != nil {
		return nil, domerrors.NewStoreError("get_all_day_themes", "", err)
	}
	defer func() { _ = rows.Close() }()

	themes := make(agenda.DayThemes)
	for rows.Next() {
		var key, theme string
		if err := rows.Scan(&key, &theme); err != nil {
			return nil, domerrors.NewStoreError("scan_day_theme", "", err)
		}
		themes[key] = theme
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewStoreError("iterate_day_themes", "", err)
	}
	return themes, nil
}

// SaveDayTheme inserts or replaces the central theme for a key.
func (db *DB) SaveDayTheme(ctx context.Context, key, theme string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO day_themes (content_key, theme, updated_at)
		VALUES (?, ?, ?)
	`, key, theme, time.Now().Unix())
	if err != nil {
		return domerrors.NewStoreError("save_day_theme", key, err)
	}
	return nil
}

// DeleteDayThemesByPrefixes deletes every day theme whose key starts with
// one of the given prefixes. Returns the number of deleted rows.
func (db *DB) DeleteDayThemesByPrefixes(ctx context.Context, prefixes []string) (int, error) {
	return db.deleteByPrefixes(ctx, "day_themes", "content_key", prefixes)
}

// deleteByPrefixes removes rows whose key column matches any prefix. The
// prefix itself is escaped so key fragments containing LIKE wildcards
// cannot widen the deletion.
func (db *DB) deleteByPrefixes(ctx context.Context, table, column string, prefixes []string) (int, error) {
	if len(prefixes) == 0 {
		return 0, nil
	}

	conditions := make([]string, len(prefixes))
	args := make([]any, len(prefixes))
	for i, prefix := range prefixes {
		conditions[i] = column + ` LIKE ? ESCAPE '\'`
		args[i] = sanitizeSearchTerm(prefix) + "%"
	}

	query := "DELETE FROM " + table + " WHERE " + strings.Join(conditions, " OR ")
	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domerrors.NewStoreError("delete_by_prefixes", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, domerrors.NewStoreError("delete_by_prefixes", table, err)
	}
	return int(affected), nil
}
