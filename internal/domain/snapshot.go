package domain

// Snapshot is the serialisable state of a game. Cells holds one digit per
// cell, row by row from the top: '0' empty, '1' and '2' the players.
type Snapshot struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Cells        string     `json:"cells"`
	ActivePlayer PlayerID   `json:"activePlayer"`
	Status       GameStatus `json:"status"`
	Winner       PlayerID   `json:"winner"`
	MoveCount    int        `json:"moveCount"`
	LastColumn   int        `json:"lastColumn"` // -1 before the first move
}

func (g *Game) Snapshot() Snapshot {
	lastColumn := -1
	if g.lastMove != nil {
		lastColumn = g.lastMove.Column
	}
	return Snapshot{
		Width:        g.board.Width(),
		Height:       g.board.Height(),
		Cells:        g.board.Encode(),
		ActivePlayer: g.current,
		Status:       g.status,
		Winner:       g.winner,
		MoveCount:    g.moveCount,
		LastColumn:   lastColumn,
	}
}

// Restore rebuilds a game from a snapshot. Every derived field (turn, status,
// winner, move count) is recomputed from the cells and must match what the
// snapshot claims. Piece counts, gravity and lines must be consistent with
// legal play ending in the recorded last move.
func Restore(s Snapshot) (*Game, error) {
	board, err := DecodeBoard(s.Width, s.Height, s.Cells)
	if err != nil {
		return nil, err
	}
	if board.HasFloatingPiece() {
		return nil, ErrInvalidSnapshot
	}

	ones, twos := board.Count(Player1), board.Count(Player2)
	if ones != twos && ones != twos+1 {
		return nil, ErrInvalidSnapshot
	}
	moveCount := ones + twos
	if s.MoveCount != moveCount {
		return nil, ErrInvalidSnapshot
	}

	g := &Game{
		board:     board,
		current:   Player1,
		status:    StatusInProgress,
		winner:    Empty,
		moveCount: moveCount,
	}

	if moveCount == 0 {
		if s.LastColumn != -1 || s.Status != StatusInProgress || s.ActivePlayer != Player1 || s.Winner != Empty {
			return nil, ErrInvalidSnapshot
		}
		return g, nil
	}

	lastMover := Player2
	if ones > twos {
		lastMover = Player1
	}

	// Only the player who moved last can hold a line: any earlier line would
	// have ended the game before this position.
	if board.HasLine(lastMover.Opponent()) {
		return nil, ErrInvalidSnapshot
	}

	if s.LastColumn < 0 || s.LastColumn >= board.Width() {
		return nil, ErrInvalidSnapshot
	}
	lastRow := board.LowestEmptyRow(s.LastColumn) + 1
	if lastRow >= board.Height() || board[lastRow][s.LastColumn] != lastMover {
		return nil, ErrInvalidSnapshot
	}
	g.lastMove = &MoveResult{Row: lastRow, Column: s.LastColumn, Player: lastMover}

	switch {
	case board.HasLine(lastMover):
		// Every line must run through the last move; an older one would
		// have ended the game a move earlier.
		before := board.Copy()
		before[lastRow][s.LastColumn] = Empty
		if before.HasLine(lastMover) {
			return nil, ErrInvalidSnapshot
		}
		g.status = StatusWon
		g.winner = lastMover
		g.current = lastMover
	case board.IsTopRowFull():
		g.status = StatusDraw
		g.current = lastMover
	default:
		g.current = lastMover.Opponent()
	}

	if s.Status != g.status || s.Winner != g.winner || s.ActivePlayer != g.current {
		return nil, ErrInvalidSnapshot
	}
	return g, nil
}
