package storage

import (
	"context"
	"fmt"

	"github.com/rcmonumento/agenda-go/internal/agenda"
	domerrors "github.com/rcmonumento/agenda-go/internal/errors"
)

// GetEfemeridesByMonth returns the month's efemérides ordered by day,
// then insertion order. An unrecorded month yields an empty slice.
func (db *DB) GetEfemeridesByMonth(ctx context.Context, month string) ([]agenda.Efemeride, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT day, label, description FROM efemerides
		WHERE month = ? ORDER BY day, id
	`, month)
	if err != nil {
		return nil, domerrors.NewStoreError("get_efemerides", month, err)
	}
	defer func() { _ = rows.Close() }()

	var events []agenda.Efemeride
	for rows.Next() {
		var e agenda.Efemeride
		if err := rows.Scan(&e.Day, &e.Label, &e.Description); err != nil {
			return nil, domerrors.NewStoreError("scan_efemeride", month, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewStoreError("iterate_efemerides", month, err)
	}
	return events, nil
}

// ReplaceDayEfemerides swaps the efemérides recorded for one day of one
// month with the given set, in one transaction. An empty set clears the
// day.
func (db *DB) ReplaceDayEfemerides(ctx context.Context, month string, day int, events []agenda.Efemeride) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, "DELETE FROM efemerides WHERE month = ? AND day = ?", month, day)
	if err != nil {
		return domerrors.NewStoreError("replace_day_efemerides", month, err)
	}

	for _, e := range events {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO efemerides (month, day, label, description)
			VALUES (?, ?, ?, ?)
		`, month, day, e.Label, e.Description)
		if err != nil {
			return domerrors.NewStoreError("replace_day_efemerides", month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SaveEfemeridesBatch appends a month's efemérides in one transaction,
// preserving slice order. Used by the seeder and the events PUT surface.
func (db *DB) SaveEfemeridesBatch(ctx context.Context, month string, events []agenda.Efemeride) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO efemerides (month, day, label, description)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range events {
		if _, err := stmt.ExecContext(ctx, month, e.Day, e.Label, e.Description); err != nil {
			return domerrors.NewStoreError("save_efemerides_batch", month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetConmemoracionesByMonth returns the month's commemorations ordered
// by day.
func (db *DB) GetConmemoracionesByMonth(ctx context.Context, month string) ([]agenda.Conmemoracion, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT day, national, international FROM conmemoraciones
		WHERE month = ? ORDER BY day
	`, month)
	if err != nil {
		return nil, domerrors.NewStoreError("get_conmemoraciones", month, err)
	}
	defer func() { _ = rows.Close() }()

	var comms []agenda.Conmemoracion
	for rows.Next() {
		var c agenda.Conmemoracion
		if err := rows.Scan(&c.Day, &c.National, &c.International); err != nil {
			return nil, domerrors.NewStoreError("scan_conmemoracion", month, err)
		}
		comms = append(comms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.NewStoreError("iterate_conmemoraciones", month, err)
	}
	return comms, nil
}

// SaveConmemoracion inserts or replaces the commemoration for one day of
// one month. The (month, day) primary key keeps one authoritative record
// per day.
func (db *DB) SaveConmemoracion(ctx context.Context, month string, comm agenda.Conmemoracion) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO conmemoraciones (month, day, national, international)
		VALUES (?, ?, ?, ?)
	`, month, comm.Day, comm.National, comm.International)
	if err != nil {
		return domerrors.NewStoreError("save_conmemoracion", month, err)
	}
	return nil
}
