package domain

// directions are the four line shapes a win can take, as (deltaRow, deltaCol):
// horizontal rightward, vertical downward, diagonal down-right, diagonal down-left.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// HasLine scans every cell as the start of a four-cell line in each of the
// four directions. A line counts only if all four cells are on the board and
// held by the player.
func (b Board) HasLine(player PlayerID) bool {
	if player == Empty {
		return false
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			for _, d := range directions {
				if b.lineFrom(y, x, d[0], d[1], player) {
					return true
				}
			}
		}
	}
	return false
}

func (b Board) lineFrom(row, column, deltaRow, deltaCol int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*deltaRow, column+i*deltaCol
		if !b.InBounds(r, c) || b[r][c] != player {
			return false
		}
	}
	return true
}

// CheckWinAt only looks at the four lines passing through (row, column), for
// whoever occupies that cell.
func (b Board) CheckWinAt(row, column int) bool {
	return len(b.LineThrough(row, column)) >= ToWin
}

// LineThrough returns the longest run of same-player cells passing through
// (row, column), ordered from one end to the other. Runs shorter than ToWin
// are returned as nil.
func (b Board) LineThrough(row, column int) []Cell {
	if !b.InBounds(row, column) {
		return nil
	}
	player := b[row][column]
	if player == Empty {
		return nil
	}

	var best []Cell
	for _, d := range directions {
		back := b.CountDiskInDirection(row, column, -d[0], -d[1], player)
		forward := b.CountDiskInDirection(row, column, d[0], d[1], player)
		if back+forward+1 < ToWin || back+forward+1 <= len(best) {
			continue
		}
		line := make([]Cell, 0, back+forward+1)
		for i := -back; i <= forward; i++ {
			line = append(line, Cell{Row: row + i*d[0], Column: column + i*d[1]})
		}
		best = line
	}
	return best
}

// this counts the number of disks in a specific direction
func (b Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for b.InBounds(r, c) && b[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
