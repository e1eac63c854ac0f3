// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"daygrid/internal/block"
)

// SQLite implements block.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS calendars (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS blocks (
			id          TEXT PRIMARY KEY,
			calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
			label       TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			start_time  REAL NOT NULL,
			end_time    REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_blocks_calendar ON blocks(calendar_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := s.db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	return nil
}

// CreateCalendar adds a new calendar.
func (s *SQLite) CreateCalendar(ctx context.Context, c block.Calendar) error {
	query := `INSERT INTO calendars (id, name, color) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.Color); err != nil {
		return fmt.Errorf("inserting calendar: %w", err)
	}
	return nil
}

// ListCalendars returns all calendars ordered by name.
func (s *SQLite) ListCalendars(ctx context.Context) ([]block.Calendar, error) {
	query := `SELECT id, name, color FROM calendars ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying calendars: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calendars []block.Calendar
	for rows.Next() {
		var c block.Calendar
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scanning calendar: %w", err)
		}
		calendars = append(calendars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}

	return calendars, nil
}

// RenameCalendar updates a calendar's name.
func (s *SQLite) RenameCalendar(ctx context.Context, id, name string) error {
	if name == "" {
		return block.ErrEmptyCalendarName
	}
	result, err := s.db.ExecContext(ctx, `UPDATE calendars SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming calendar: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrCalendarNotFound
	}
	return nil
}

// DeleteCalendar removes a calendar and all of its blocks.
func (s *SQLite) DeleteCalendar(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE calendar_id = ?`, id); err != nil {
		return fmt.Errorf("deleting calendar blocks: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrCalendarNotFound
	}

	return tx.Commit()
}

// CreateBlock adds a new block.
func (s *SQLite) CreateBlock(ctx context.Context, b block.Block) error {
	query := `
		INSERT INTO blocks (id, calendar_id, label, color, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, b.ID, b.CalendarID, b.Label, b.Color, b.Start, b.End)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}
	return nil
}

// GetBlock retrieves a block by ID.
func (s *SQLite) GetBlock(ctx context.Context, id string) (block.Block, error) {
	query := `
		SELECT id, calendar_id, label, color, start_time, end_time
		FROM blocks
		WHERE id = ?
	`

	var b block.Block
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CalendarID, &b.Label, &b.Color, &b.Start, &b.End,
	)
	if err == sql.ErrNoRows {
		return block.Block{}, block.ErrBlockNotFound
	}
	if err != nil {
		return block.Block{}, fmt.Errorf("querying block: %w", err)
	}

	return b, nil
}

// ListBlocks returns all blocks on one calendar ordered by start time.
func (s *SQLite) ListBlocks(ctx context.Context, calendarID string) ([]block.Block, error) {
	query := `
		SELECT id, calendar_id, label, color, start_time, end_time
		FROM blocks
		WHERE calendar_id = ?
		ORDER BY start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []block.Block
	for rows.Next() {
		var b block.Block
		if err := rows.Scan(&b.ID, &b.CalendarID, &b.Label, &b.Color, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}

	return blocks, nil
}

// UpdateBlockTimes updates a block's start and end in place.
func (s *SQLite) UpdateBlockTimes(ctx context.Context, id string, upd block.TimeUpdate) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE blocks SET start_time = ?, end_time = ? WHERE id = ?`,
		upd.Start, upd.End, id,
	)
	if err != nil {
		return fmt.Errorf("updating block times: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrBlockNotFound
	}
	return nil
}

// UpdateBlockLabel updates a block's label in place.
func (s *SQLite) UpdateBlockLabel(ctx context.Context, id, label string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE blocks SET label = ? WHERE id = ?`, label, id)
	if err != nil {
		return fmt.Errorf("updating block label: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrBlockNotFound
	}
	return nil
}

// UpdateBlockColor updates a block's display color in place.
func (s *SQLite) UpdateBlockColor(ctx context.Context, id, color string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE blocks SET color = ? WHERE id = ?`, color, id)
	if err != nil {
		return fmt.Errorf("updating block color: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrBlockNotFound
	}
	return nil
}

// DeleteBlock removes a block.
func (s *SQLite) DeleteBlock(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return block.ErrBlockNotFound
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
