package game

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("game not found")

// Record is a persisted session snapshot. Snapshot is opaque to the store;
// the other fields are copied out of it so stores can list and filter.
type Record struct {
	ID         string
	Phase      string
	GameType   int
	FinishMode string
	TotalLegs  int
	Snapshot   []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists session snapshots. Load and Save return ErrNotFound for
// unknown ids.
type Store interface {
	Create(ctx context.Context, rec Record) error
	Load(ctx context.Context, id string) (Record, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, phase string) ([]Record, error)
}
