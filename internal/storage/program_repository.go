package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
)

// GetProgram retrieves a program by id. Returns ErrNotFound when the id
// does not exist.
func (db *DB) GetProgram(ctx context.Context, id string) (*agenda.Program, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, air_time, air_days, active, category, topic_calendar, genre
		FROM programs WHERE id = ?
	`, id)

	program, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domerrors.ErrNotFound
	}
	if err != nil {
		return nil, domerrors.NewStoreError("get_program", id, err)
	}
	return program, nil
}

// GetAllPrograms returns the full program grid ordered by air time, then
// name, the order the weekly view renders them in.
func (db *DB) GetAllPrograms(ctx context.Context) ([]agenda.Program, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, air_time, air_days, active, category, topic_calendar, genre
		FROM programs ORDER BY air_time, name
	`)
	if err != nil {
		return nil, domerrors.NewStoreError("get_all_programs", "", err)
	}
	defer func() { _ = rows.Close() }()

	return collectPrograms(rows)
}

// SearchProgramsByName returns programs whose name contains the given
// term (case-insensitive LIKE).
func (db *DB) SearchProgramsByName(ctx context.Context, name string) ([]agenda.Program, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, air_time, air_days, active, category, topic_calendar, genre
		FROM programs WHERE name LIKE ? ESCAPE '\' ORDER BY air_time, name
	`, "%"+sanitizeSearchTerm(name)+"%")
	if err != nil {
		return nil, domerrors.NewStoreError("search_programs", name, err)
	}
	defer func() { _ = rows.Close() }()

	return collectPrograms(rows)
}

// SaveProgram inserts or replaces a program record. Daily content rows
// are not touched; they live in daily_content keyed by program id.
func (db *DB) SaveProgram(ctx context.Context, program *agenda.Program) error {
	days, calendar, err := marshalProgramFields(program)
	if err != nil {
		return domerrors.NewStoreError("save_program", program.ID, err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO programs (id, name, air_time, air_days, active, category, topic_calendar, genre, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, program.ID, program.Name, program.Time, days, boolToInt(program.Active),
		string(program.Category), calendar, program.Genre, time.Now().Unix())
	if err != nil {
		return domerrors.NewStoreError("save_program", program.ID, err)
	}
	return nil
}

// SaveProgramsBatch saves multiple programs in one transaction.
func (db *DB) SaveProgramsBatch(ctx context.Context, programs []*agenda.Program) error {
	if len(programs) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO programs (id, name, air_time, air_days, active, category, topic_calendar, genre, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	updatedAt := time.Now().Unix()
	for _, program := range programs {
		days, calendar, err := marshalProgramFields(program)
		if err != nil {
			return domerrors.NewStoreError("save_programs_batch", program.ID, err)
		}
		_, err = stmt.ExecContext(ctx, program.ID, program.Name, program.Time, days,
			boolToInt(program.Active), string(program.Category), calendar, program.Genre, updatedAt)
		if err != nil {
			return domerrors.NewStoreError("save_programs_batch", program.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DeleteProgram removes a program; its daily_content rows go with it via
// the foreign key cascade. Returns ErrNotFound when the id is unknown.
func (db *DB) DeleteProgram(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return domerrors.NewStoreError("delete_program", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domerrors.NewStoreError("delete_program", id, err)
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// CountPrograms returns the number of programs in the grid.
func (db *DB) CountPrograms(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs").Scan(&count)
	if err != nil {
		return 0, domerrors.NewStoreError("count_programs", "", err)
	}
	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (*agenda.Program, error) {
	var (
		p        agenda.Program
		days     string
		active   int
		category string
		calendar sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Time, &days, &active, &category, &calendar, &p.Genre); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
		return nil, fmt.Errorf("decode air days for %s: %w", p.ID, err)
	}
	if calendar.Valid && calendar.String != "" {
		if err := json.Unmarshal([]byte(calendar.String), &p.TopicCalendar); err != nil {
			return nil, fmt.Errorf("decode topic calendar for %s: %w", p.ID, err)
		}
	}
	p.Active = active != 0
	p.Category = agenda.Category(category)
	return &p, nil
}

func collectPrograms(rows *sql.Rows) ([]agenda.Program, error) {
	var programs []agenda.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, domerrors.NewStoreError("scan_program", "", err)
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewStoreError("iterate_programs", "", err)
	}
	return programs, nil
}

func marshalProgramFields(p *agenda.Program) (days, calendar string, err error) {
	daysJSON, err := json.Marshal(p.Days)
	if err != nil {
		return "", "", fmt.Errorf("encode air days: %w", err)
	}
	if p.Days == nil {
		daysJSON = []byte("[]")
	}
	if p.TopicCalendar == nil {
		return string(daysJSON), "", nil
	}
	calendarJSON, err := json.Marshal(p.TopicCalendar)
	if err != nil {
		return "", "", fmt.Errorf("encode topic calendar: %w", err)
	}
	return string(daysJSON), string(calendarJSON), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
