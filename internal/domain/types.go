package domain

// PlayerID identifies who occupies a cell. Empty marks a free cell.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

const (
	StandardRows    = 6
	StandardColumns = 7
	ToWin           = 4

	// MaxDimension bounds both width and height of a board.
	MaxDimension = 64
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

// Cell addresses a board position. Row 0 is the top row.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// MoveResult is where an accepted piece landed.
type MoveResult struct {
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Player PlayerID `json:"player"`
}

func (m MoveResult) Cell() Cell {
	return Cell{Row: m.Row, Column: m.Column}
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameOver          Error = "game is over"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidSnapshot   Error = "invalid game snapshot"
)
