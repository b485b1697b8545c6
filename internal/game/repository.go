package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the Postgres Store.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// -----------------------------------------------------------------------------
// Snapshots
// -----------------------------------------------------------------------------

func (r *Repository) Create(ctx context.Context, rec Record) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO games (id, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7);
`, rec.ID, rec.Phase, rec.GameType, rec.FinishMode, rec.TotalLegs, rec.Snapshot, rec.CreatedAt)
	return err
}

func (r *Repository) Load(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := r.db.QueryRow(ctx, `
SELECT id::text, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at
FROM games
WHERE id = $1;
`, id).Scan(
		&rec.ID,
		&rec.Phase,
		&rec.GameType,
		&rec.FinishMode,
		&rec.TotalLegs,
		&rec.Snapshot,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *Repository) Save(ctx context.Context, rec Record) error {
	tag, err := r.db.Exec(ctx, `
UPDATE games
SET phase = $2, game_type = $3, finish_mode = $4, total_legs = $5, snapshot = $6, updated_at = $7
WHERE id = $1;
`, rec.ID, rec.Phase, rec.GameType, rec.FinishMode, rec.TotalLegs, rec.Snapshot, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns games newest first, optionally filtered by phase.
func (r *Repository) List(ctx context.Context, phase string) ([]Record, error) {
	rows, err := r.db.Query(ctx, `
SELECT id::text, phase, game_type, finish_mode, total_legs, snapshot, created_at, updated_at
FROM games
WHERE $1::text = '' OR phase = $1
ORDER BY updated_at DESC, id ASC;
`, phase)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	recs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var rec Record
		err := row.Scan(
			&rec.ID,
			&rec.Phase,
			&rec.GameType,
			&rec.FinishMode,
			&rec.TotalLegs,
			&rec.Snapshot,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return recs, nil
}
