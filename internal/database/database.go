package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the games table. Each row stores the opaque session
// snapshot plus a few columns copied out of it for listing.
func Migrate(ctx context.Context, db *pgxpool.Pool, logger *log.Logger) error {
	const gamesTable = `
CREATE TABLE IF NOT EXISTS games (
    id          UUID PRIMARY KEY,
    phase       TEXT NOT NULL DEFAULT 'setup',
    game_type   INT NOT NULL DEFAULT 501,
    finish_mode TEXT NOT NULL DEFAULT 'double',
    total_legs  INT NOT NULL DEFAULT 1,
    snapshot    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

	const phaseIndex = `CREATE INDEX IF NOT EXISTS games_phase_idx ON games (phase, updated_at DESC);`

	if _, err := db.Exec(ctx, gamesTable); err != nil {
		return err
	}
	if _, err := db.Exec(ctx, phaseIndex); err != nil {
		return err
	}

	logger.Info("game-api migrations applied")
	return nil
}
