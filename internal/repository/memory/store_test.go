package memory

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/repository"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(id string, created time.Time) *game.Record {
	return &game.Record{
		ID:        id,
		Players:   [2]game.Player{{Name: "Ann", Color: "red"}, {Name: "Bob", Color: "yellow"}},
		Game:      domain.NewStandardGame().Snapshot(),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec := newRecord("g1", now)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Mutating the caller's copy must not reach the store.
	rec.Players[0].Name = "Changed"
	finished := now.Add(time.Minute)
	got.FinishedAt = &finished

	again, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.Players[0].Name)
	assert.Nil(t, again.FinishedAt)
}

func TestStoreMissing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Load(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), repository.ErrNotFound)
}

func TestStoreDeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, newRecord("b", base.Add(time.Second))))
	require.NoError(t, s.Save(ctx, newRecord("a", base.Add(2*time.Second))))
	require.NoError(t, s.Save(ctx, newRecord("c", base)))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})

	require.NoError(t, s.Delete(ctx, "b"))
	assert.Equal(t, 2, s.Len())

	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
