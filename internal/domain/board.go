package domain

import "strings"

// Board is a grid of rows; board[0] is the top row.
type Board [][]PlayerID

func NewBoard(width, height int) (Board, error) {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return nil, ErrInvalidDimensions
	}
	board := make(Board, height)
	for i := range board {
		board[i] = make([]PlayerID, width)
	}
	return board, nil
}

func (b Board) Height() int {
	return len(b)
}

func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

func (b Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.Height() && column >= 0 && column < b.Width()
}

// LowestEmptyRow scans the column from the bottom row upward and returns the
// first free row, or -1 when the column is full.
func (b Board) LowestEmptyRow(column int) int {
	for row := b.Height() - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			return row
		}
	}
	return -1
}

// DropDisk places the player's disk in the lowest free row of the column.
// The board is left untouched when the column is full.
func (b Board) DropDisk(column int, player PlayerID) (int, error) {
	if column < 0 || column >= b.Width() {
		return -1, ErrInvalidColumn
	}
	row := b.LowestEmptyRow(column)
	if row < 0 {
		return -1, ErrColumnFull
	}
	b[row][column] = player
	return row, nil
}

// IsColumnFull reports whether the top cell of the column is taken.
func (b Board) IsColumnFull(column int) bool {
	return b[0][column] != Empty
}

// IsTopRowFull is the draw condition: with gravity, a full top row means a
// full board.
func (b Board) IsTopRowFull() bool {
	for c := 0; c < b.Width(); c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// this creates a deep copy of the board
func (b Board) Copy() Board {
	newBoard := make(Board, len(b))
	for i := range b {
		newBoard[i] = make([]PlayerID, len(b[i]))
		copy(newBoard[i], b[i])
	}
	return newBoard
}

func (b Board) ValidColumns() []int {
	columns := []int{}
	for c := 0; c < b.Width(); c++ {
		if !b.IsColumnFull(c) {
			columns = append(columns, c)
		}
	}
	return columns
}

// Count returns how many cells the player holds.
func (b Board) Count(player PlayerID) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == player {
				n++
			}
		}
	}
	return n
}

// HasFloatingPiece reports a gravity violation: an occupied cell above an
// empty one in the same column.
func (b Board) HasFloatingPiece() bool {
	for c := 0; c < b.Width(); c++ {
		for r := 0; r < b.Height()-1; r++ {
			if b[r][c] != Empty && b[r+1][c] == Empty {
				return true
			}
		}
	}
	return false
}

// Encode flattens the board row by row into one digit per cell.
func (b Board) Encode() string {
	var sb strings.Builder
	sb.Grow(b.Width() * b.Height())
	for _, row := range b {
		for _, cell := range row {
			sb.WriteByte(byte('0' + cell))
		}
	}
	return sb.String()
}

// DecodeBoard is the inverse of Encode.
func DecodeBoard(width, height int, cells string) (Board, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, ErrInvalidSnapshot
	}
	for i := 0; i < len(cells); i++ {
		p := PlayerID(cells[i] - '0')
		if p != Empty && !p.IsPlayer() {
			return nil, ErrInvalidSnapshot
		}
		board[i/width][i%width] = p
	}
	return board, nil
}

// String renders the board for terminals: X is player 1, O is player 2.
func (b Board) String() string {
	var sb strings.Builder
	for c := 0; c < b.Width(); c++ {
		sb.WriteString(" ")
		sb.WriteString(columnLabel(c))
	}
	sb.WriteString("\n")
	for _, row := range b {
		sb.WriteString("|")
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			switch cell {
			case Player1:
				sb.WriteString("X")
			case Player2:
				sb.WriteString("O")
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// columnLabel is the 1-based column number, trimmed to its last digit so
// wide boards stay aligned.
func columnLabel(column int) string {
	return string(rune('0' + (column+1)%10))
}
