package game_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/repository/memory"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newService(t *testing.T) (*game.Service, *memory.Store, *clock) {
	t.Helper()
	store := memory.NewStore()
	clk := &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := game.NewService(store, game.Options{
		Width:      domain.StandardColumns,
		Height:     domain.StandardRows,
		Palette:    []string{"red", "yellow", "green"},
		SessionTTL: time.Hour,
		Now:        clk.Now,
	})
	require.NoError(t, err)
	return svc, store, clk
}

func TestNewServiceValidatesOptions(t *testing.T) {
	_, err := game.NewService(memory.NewStore(), game.Options{Width: 0, Height: 6, Palette: []string{"red", "yellow"}})
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = game.NewService(memory.NewStore(), game.Options{Width: 7, Height: 6, Palette: []string{"red", " RED "}})
	assert.ErrorIs(t, err, game.ErrBadPalette)
}

func TestCreateResolvesPlayers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     game.NewGameRequest
		want    [2]game.Player
		wantErr error
	}{
		{
			name: "defaults",
			want: [2]game.Player{{Name: "Player 1", Color: "red"}, {Name: "Player 2", Color: "yellow"}},
		},
		{
			name: "default skips the other pick",
			req:  game.NewGameRequest{Player1: game.Player{Color: "yellow"}},
			want: [2]game.Player{{Name: "Player 1", Color: "yellow"}, {Name: "Player 2", Color: "red"}},
		},
		{
			name: "normalised",
			req: game.NewGameRequest{
				Player1: game.Player{Name: "  Ann ", Color: " Green"},
				Player2: game.Player{Name: "Bob", Color: "RED"},
			},
			want: [2]game.Player{{Name: "Ann", Color: "green"}, {Name: "Bob", Color: "red"}},
		},
		{
			name:    "same color",
			req:     game.NewGameRequest{Player1: game.Player{Color: "red"}, Player2: game.Player{Color: "red"}},
			wantErr: game.ErrSameColor,
		},
		{
			name:    "unknown color",
			req:     game.NewGameRequest{Player2: game.Player{Color: "magenta"}},
			wantErr: game.ErrUnknownColor,
		},
		{
			name:    "long name",
			req:     game.NewGameRequest{Player1: game.Player{Name: strings.Repeat("x", 33)}},
			wantErr: game.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newService(t)
			session, err := svc.Create(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, store.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, session.Players)
			assert.Equal(t, domain.Player1, session.Game.ActivePlayer())
			assert.Equal(t, 1, store.Len())
		})
	}
}

func TestMoveUntilWin(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newService(t)

	session, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	var out *game.MoveOutcome
	for _, col := range []int{3, 4, 3, 4, 3, 4} {
		clk.Advance(time.Second)
		out, err = svc.Move(ctx, session.ID, col)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, out.Session.Game.Status())
		assert.Nil(t, out.Session.FinishedAt)
	}
	assert.Equal(t, domain.MoveResult{Row: 3, Column: 4, Player: domain.Player2}, out.Move)
	assert.Equal(t, "audio/Sound3b.mp3", out.Cue.Asset)

	clk.Advance(time.Second)
	out, err = svc.Move(ctx, session.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWon, out.Session.Game.Status())
	assert.Equal(t, domain.Player1, out.Session.Game.Winner())
	require.NotNil(t, out.Session.FinishedAt)
	assert.Equal(t, clk.Now(), *out.Session.FinishedAt)
	assert.Equal(t, []domain.Cell{{Row: 2, Column: 3}, {Row: 3, Column: 3}, {Row: 4, Column: 3}, {Row: 5, Column: 3}},
		out.Session.Game.WinningLine())

	_, err = svc.Move(ctx, session.ID, 0)
	assert.ErrorIs(t, err, domain.ErrGameOver)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Game.MoveCount())
	assert.True(t, stored.Game.IsWin())
}

func TestMoveRejectionsLeaveGameUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	session, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	for i := 0; i < domain.StandardRows; i++ {
		_, err := svc.Move(ctx, session.ID, 0)
		require.NoError(t, err)
	}

	_, err = svc.Move(ctx, session.ID, 0)
	assert.ErrorIs(t, err, domain.ErrColumnFull)
	_, err = svc.Move(ctx, session.ID, domain.StandardColumns)
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StandardRows, stored.Game.MoveCount())
	assert.Equal(t, domain.Player1, stored.Game.ActivePlayer())
}

func TestUnknownGame(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	_, err = svc.Move(ctx, "missing", 0)
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	_, err = svc.Restart(ctx, "missing")
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), game.ErrGameNotFound)
}

func TestRestartKeepsPlayers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	session, err := svc.Create(ctx, game.NewGameRequest{
		Player1: game.Player{Name: "Ann", Color: "green"},
		Player2: game.Player{Name: "Bob", Color: "red"},
	})
	require.NoError(t, err)

	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		_, err := svc.Move(ctx, session.ID, col)
		require.NoError(t, err)
	}

	restarted, err := svc.Restart(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, restarted.ID)
	assert.Equal(t, session.Players, restarted.Players)
	assert.Equal(t, domain.StatusInProgress, restarted.Game.Status())
	assert.Equal(t, domain.Player1, restarted.Game.ActivePlayer())
	assert.Zero(t, restarted.Game.MoveCount())
	assert.Nil(t, restarted.FinishedAt)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	session, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))
	assert.Zero(t, store.Len())
	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	svc, store, clk := newService(t)

	finished, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)
	for _, col := range []int{3, 4, 3, 4, 3, 4, 3} {
		_, err := svc.Move(ctx, finished.ID, col)
		require.NoError(t, err)
	}
	idle, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	clk.Advance(90 * time.Minute)
	active, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	removed, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = svc.Get(ctx, finished.ID)
	assert.ErrorIs(t, err, game.ErrGameNotFound)

	// Unfinished games get twice the TTL.
	clk.Advance(31 * time.Minute)
	removed, err = svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = svc.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, game.ErrGameNotFound)

	_, err = svc.Get(ctx, active.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentMovesAreSerialised(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	session, err := svc.Create(ctx, game.NewGameRequest{})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 3*domain.StandardColumns; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			if _, err := svc.Move(ctx, session.ID, col); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i % domain.StandardColumns)
	}
	wg.Wait()

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, accepted, stored.Game.MoveCount())
	assert.False(t, domain.Board(stored.Game.Cells()).HasFloatingPiece())
}
