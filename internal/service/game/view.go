package game

import (
	"time"

	"github.com/iamasit07/connect4/internal/domain"
)

// View is the JSON shape both transports send for a game.
type View struct {
	ID           string              `json:"id"`
	Width        int                 `json:"width"`
	Height       int                 `json:"height"`
	Board        [][]domain.PlayerID `json:"board"`
	Players      [2]Player           `json:"players"`
	ActivePlayer domain.PlayerID     `json:"activePlayer"`
	Status       domain.GameStatus   `json:"status"`
	Winner       domain.PlayerID     `json:"winner"`
	WinningLine  []domain.Cell       `json:"winningLine,omitempty"`
	ValidColumns []int               `json:"validColumns"`
	MoveCount    int                 `json:"moveCount"`
	LastMove     *domain.MoveResult  `json:"lastMove,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	FinishedAt   *time.Time          `json:"finishedAt,omitempty"`
}

func NewView(s *Session) View {
	g := s.Game
	v := View{
		ID:           s.ID,
		Width:        g.Width(),
		Height:       g.Height(),
		Board:        g.Cells(),
		Players:      s.Players,
		ActivePlayer: g.ActivePlayer(),
		Status:       g.Status(),
		Winner:       g.Winner(),
		WinningLine:  g.WinningLine(),
		ValidColumns: g.ValidColumns(),
		MoveCount:    g.MoveCount(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		FinishedAt:   s.FinishedAt,
	}
	if last, ok := g.LastMove(); ok {
		v.LastMove = &last
	}
	return v
}

// MoveView is the reply to an accepted move.
type MoveView struct {
	Game View              `json:"game"`
	Move domain.MoveResult `json:"move"`
	Cue  Cue               `json:"cue"`
}

func NewMoveView(out *MoveOutcome) MoveView {
	return MoveView{
		Game: NewView(out.Session),
		Move: out.Move,
		Cue:  out.Cue,
	}
}
