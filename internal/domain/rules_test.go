package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardFrom(t *testing.T, rows ...string) Board {
	t.Helper()
	b, err := DecodeBoard(len(rows[0]), len(rows), join(rows))
	require.NoError(t, err)
	return b
}

func join(rows []string) string {
	s := ""
	for _, r := range rows {
		s += r
	}
	return s
}

func TestHasLineDoesNotWrapAroundEdges(t *testing.T) {
	b := boardFrom(t,
		"0000000",
		"0000000",
		"0000000",
		"0000000",
		"1000000",
		"2000111",
	)
	// Three on the right edge of row 5 plus one at the start of row 4 are
	// consecutive in the encoding but not on the board.
	assert.False(t, b.HasLine(Player1))
	assert.False(t, b.CheckWinAt(5, 6))
}

func TestHasLineIgnoresEmpty(t *testing.T) {
	b, err := NewBoard(7, 6)
	require.NoError(t, err)
	assert.False(t, b.HasLine(Empty))
	assert.Nil(t, b.LineThrough(5, 0))
}

func TestLineThroughReturnsLongestRun(t *testing.T) {
	b := boardFrom(t,
		"0000000",
		"0000000",
		"0000000",
		"0000000",
		"0000000",
		"2111112",
	)
	line := b.LineThrough(5, 3)
	assert.Len(t, line, 5)
	assert.Equal(t, Cell{Row: 5, Column: 1}, line[0])
	assert.Equal(t, Cell{Row: 5, Column: 5}, line[4])
	assert.True(t, b.HasLine(Player1))
	assert.False(t, b.HasLine(Player2))
}

func TestCountDiskInDirection(t *testing.T) {
	b := boardFrom(t,
		"0000",
		"0200",
		"0120",
		"1112",
	)
	assert.Equal(t, 2, b.CountDiskInDirection(3, 0, 0, 1, Player1))
	assert.Equal(t, 2, b.CountDiskInDirection(3, 3, -1, -1, Player2))
	assert.Equal(t, 0, b.CountDiskInDirection(0, 0, -1, 0, Player1))
}

func TestValidColumnsAndFloating(t *testing.T) {
	b := boardFrom(t,
		"1020",
		"2010",
		"1020",
		"2010",
	)
	assert.Equal(t, []int{1, 3}, b.ValidColumns())
	assert.False(t, b.HasFloatingPiece())

	b[0][1] = Player1
	assert.True(t, b.HasFloatingPiece())
}
