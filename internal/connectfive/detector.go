package connectfive

import "github.com/rocketscienceinc/connectfive-backend/internal/entity"

// direction is one class of lines checked for WinLen in a row, with the range of start cells
// that keep the whole line on the board.
type direction struct {
	dRow, dCol     int
	minRow, maxRow int
	minCol, maxCol int
}

// Scan order decides which owner is reported when a board holds several lines.
var directions = [...]direction{
	// horizontal
	{dRow: 0, dCol: 1, minRow: 0, maxRow: entity.Rows - 1, minCol: 0, maxCol: entity.Cols - entity.WinLen},
	// vertical
	{dRow: 1, dCol: 0, minRow: 0, maxRow: entity.Rows - entity.WinLen, minCol: 0, maxCol: entity.Cols - 1},
	// down-right
	{dRow: 1, dCol: 1, minRow: 0, maxRow: entity.Rows - entity.WinLen, minCol: 0, maxCol: entity.Cols - entity.WinLen},
	// down-left
	{dRow: 1, dCol: -1, minRow: 0, maxRow: entity.Rows - entity.WinLen, minCol: entity.WinLen - 1, maxCol: entity.Cols - 1},
}

// FindWinner scans the whole board and returns the owner of the first complete line found,
// or EmptyCell when nobody has one.
func FindWinner(board *entity.Board) entity.Marker {
	for _, dir := range directions {
		for row := dir.minRow; row <= dir.maxRow; row++ {
			for col := dir.minCol; col <= dir.maxCol; col++ {
				if lineComplete(board, row, col, dir) {
					return board[row][col]
				}
			}
		}
	}

	return entity.EmptyCell
}

func IsDraw(board *entity.Board) bool {
	return board.IsFull() && FindWinner(board) == entity.EmptyCell
}

func lineComplete(board *entity.Board, row, col int, dir direction) bool {
	start := board[row][col]
	if start == entity.EmptyCell {
		return false
	}

	for step := 1; step < entity.WinLen; step++ {
		if board[row+step*dir.dRow][col+step*dir.dCol] != start {
			return false
		}
	}

	return true
}
