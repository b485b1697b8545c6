package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merev/ds-darts-engine/internal/game"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id, phase string, updated time.Time) game.Record {
	return game.Record{
		ID:         id,
		Phase:      phase,
		GameType:   501,
		FinishMode: "double",
		TotalLegs:  3,
		Snapshot:   []byte(`{"state":{"phase":"` + phase + `"},"undo":[]}`),
		CreatedAt:  updated,
		UpdatedAt:  updated,
	}
}

var base = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func TestCreateAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := record("g1", "playing", base)
	require.NoError(t, s.Create(ctx, rec))
	// Duplicate id should error
	assert.Error(t, s.Create(ctx, rec))

	got, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestLoadNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestSaveOverwritesSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, record("g1", "playing", base)))

	later := record("g1", "finished", base.Add(time.Minute))
	later.CreatedAt = base
	require.NoError(t, s.Save(ctx, later))

	got, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Phase)
	assert.Equal(t, later.Snapshot, got.Snapshot)
	assert.Equal(t, base, got.CreatedAt)
	assert.Equal(t, base.Add(time.Minute), got.UpdatedAt)

	err = s.Save(ctx, record("missing", "playing", base))
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestListFiltersByPhase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, record("a", "playing", base)))
	require.NoError(t, s.Create(ctx, record("b", "finished", base.Add(time.Second))))
	require.NoError(t, s.Create(ctx, record("c", "playing", base.Add(2*time.Second))))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)

	playing, err := s.List(ctx, "playing")
	require.NoError(t, err)
	require.Len(t, playing, 2)
	assert.Equal(t, []string{"c", "a"}, []string{playing[0].ID, playing[1].ID})
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, record("g1", "playing", base)))

	require.NoError(t, s.Delete(ctx, "g1"))
	_, err := s.Load(ctx, "g1")
	assert.ErrorIs(t, err, game.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "g1"), game.ErrNotFound)
}
