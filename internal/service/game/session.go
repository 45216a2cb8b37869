package game

import (
	"context"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
)

// Player is one side of a hotseat game.
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Session is a live game handle: the engine plus who is playing it.
type Session struct {
	ID         string
	Players    [2]Player
	Game       *domain.Game
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FinishedAt *time.Time
}

// Player returns the display data for a player id.
func (s *Session) Player(id domain.PlayerID) Player {
	if id == domain.Player2 {
		return s.Players[1]
	}
	return s.Players[0]
}

// Record is what stores keep for a session.
type Record struct {
	ID         string          `json:"id"`
	Players    [2]Player       `json:"players"`
	Game       domain.Snapshot `json:"game"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
}

// Store keeps session records. Implementations return
// repository.ErrNotFound for unknown ids.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Record, error)
}

func (s *Session) record() *Record {
	return &Record{
		ID:         s.ID,
		Players:    s.Players,
		Game:       s.Game.Snapshot(),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		FinishedAt: s.FinishedAt,
	}
}

func sessionFromRecord(rec *Record) (*Session, error) {
	g, err := domain.Restore(rec.Game)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         rec.ID,
		Players:    rec.Players,
		Game:       g,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		FinishedAt: rec.FinishedAt,
	}, nil
}
