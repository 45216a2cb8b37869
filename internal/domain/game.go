package domain

// Game is one Connect Four match. It owns its board and turn state and is
// not safe for concurrent use; callers serialise access.
type Game struct {
	board     Board
	current   PlayerID
	status    GameStatus
	winner    PlayerID
	moveCount int
	lastMove  *MoveResult
}

func NewGame(width, height int) (*Game, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:   board,
		current: Player1,
		status:  StatusInProgress,
		winner:  Empty,
	}, nil
}

// NewStandardGame returns a 7 wide, 6 high game.
func NewStandardGame() *Game {
	g, _ := NewGame(StandardColumns, StandardRows)
	return g
}

// DropPiece drops the active player's piece into the column. Rejected moves
// (finished game, column out of range, full column) change nothing.
//
// After an accepted move a win is checked before a draw, so a piece that
// fills the top row while completing a line wins. The active player only
// changes when the game goes on.
func (g *Game) DropPiece(column int) (MoveResult, error) {
	if g.IsFinished() {
		return MoveResult{}, ErrGameOver
	}

	row, err := g.board.DropDisk(column, g.current)
	if err != nil {
		return MoveResult{}, err
	}

	g.moveCount++
	move := MoveResult{Row: row, Column: column, Player: g.current}
	g.lastMove = &move

	if g.CheckForWin() {
		g.status = StatusWon
		g.winner = g.current
		return move, nil
	}

	if g.CheckForDraw() {
		g.status = StatusDraw
		return move, nil
	}

	g.current = g.current.Opponent()
	return move, nil
}

// CheckForWin reports whether the active player holds four in a row anywhere
// on the board.
func (g *Game) CheckForWin() bool {
	return g.board.HasLine(g.current)
}

func (g *Game) CheckForDraw() bool {
	return g.board.IsTopRowFull()
}

func (g *Game) IsWin() bool {
	return g.status == StatusWon
}

func (g *Game) IsDraw() bool {
	return g.status == StatusDraw
}

func (g *Game) IsFinished() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

func (g *Game) ActivePlayer() PlayerID {
	return g.current
}

func (g *Game) Status() GameStatus {
	return g.status
}

// Winner is Empty unless the game was won.
func (g *Game) Winner() PlayerID {
	return g.winner
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) Width() int {
	return g.board.Width()
}

func (g *Game) Height() int {
	return g.board.Height()
}

// Cells returns a copy of the grid.
func (g *Game) Cells() [][]PlayerID {
	return g.board.Copy()
}

func (g *Game) ValidColumns() []int {
	if g.IsFinished() {
		return []int{}
	}
	return g.board.ValidColumns()
}

// LastMove returns the most recent accepted move, if any.
func (g *Game) LastMove() (MoveResult, bool) {
	if g.lastMove == nil {
		return MoveResult{}, false
	}
	return *g.lastMove, true
}

// WinningLine returns the connected cells through the winning move, or nil
// while the game is not won.
func (g *Game) WinningLine() []Cell {
	if g.status != StatusWon || g.lastMove == nil {
		return nil
	}
	return g.board.LineThrough(g.lastMove.Row, g.lastMove.Column)
}

func (g *Game) String() string {
	return g.board.String()
}
