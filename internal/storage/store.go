// Package storage keeps game snapshots in an embedded SQLite database, for
// single-host setups that do not run Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/merev/ds-darts-engine/internal/game"
)

// Store handles SQLite persistence.
type Store struct {
	db *sql.DB
}

var _ game.Store = (*Store)(nil)

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: writes are serialized anyway and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id          TEXT PRIMARY KEY,
			phase       TEXT NOT NULL DEFAULT 'setup',
			game_type   INTEGER NOT NULL DEFAULT 501,
			finish_mode TEXT NOT NULL DEFAULT 'double',
			total_legs  INTEGER NOT NULL DEFAULT 1,
			snapshot    TEXT NOT NULL,
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS games_phase_idx ON games (phase, updated_at);
	`)
	return err
}

// Create inserts a new game row.
func (s *Store) Create(ctx context.Context, rec game.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Phase, rec.GameType, rec.FinishMode, rec.TotalLegs, string(rec.Snapshot),
		rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	return err
}

// Load retrieves a game by id.
func (s *Store) Load(ctx context.Context, id string) (game.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at
		FROM games WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Record{}, game.ErrNotFound
	}
	return rec, err
}

// Save overwrites the snapshot of an existing game.
func (s *Store) Save(ctx context.Context, rec game.Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE games
		SET phase = ?, game_type = ?, finish_mode = ?, total_legs = ?, snapshot = ?, updated_at = ?
		WHERE id = ?
	`, rec.Phase, rec.GameType, rec.FinishMode, rec.TotalLegs, string(rec.Snapshot),
		rec.UpdatedAt.UnixNano(), rec.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a game.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// List returns all games with the given phase (or all if phase is empty),
// most recently updated first.
func (s *Store) List(ctx context.Context, phase string) ([]game.Record, error) {
	const cols = "SELECT id, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at FROM games"
	var rows *sql.Rows
	var err error
	if phase == "" {
		rows, err = s.db.QueryContext(ctx, cols+" ORDER BY updated_at DESC, id ASC")
	} else {
		rows, err = s.db.QueryContext(ctx, cols+" WHERE phase = ? ORDER BY updated_at DESC, id ASC", phase)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []game.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (game.Record, error) {
	var (
		rec                  game.Record
		snapshot             string
		createdAt, updatedAt int64
	)
	err := sc.Scan(&rec.ID, &rec.Phase, &rec.GameType, &rec.FinishMode, &rec.TotalLegs,
		&snapshot, &createdAt, &updatedAt)
	if err != nil {
		return game.Record{}, err
	}
	rec.Snapshot = []byte(snapshot)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return game.ErrNotFound
	}
	return nil
}
