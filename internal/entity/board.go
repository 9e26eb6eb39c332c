package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
)

const (
	Rows   = 6
	Cols   = 9
	Cells  = Rows * Cols
	WinLen = 5
)

// Marker identifies the owner of a cell. Each game has exactly two distinct markers.
type Marker string

const (
	EmptyCell Marker = ""

	MarkBlue Marker = "BLUE"
	MarkRed  Marker = "RED"
)

// Board is the game grid. Row 0 is the top; dropped pieces fall toward row Rows-1.
type Board [Rows][Cols]Marker

// Index flattens (row, col) into the absolute cell index used on the wire.
func Index(row, col int) int {
	return row*Cols + col
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func (that *Board) Get(row, col int) (Marker, error) {
	if !InBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that[row][col], nil
}

// Set claims an empty cell. Claimed cells are never reassigned.
func (that *Board) Set(row, col int, mark Marker) error {
	current, err := that.Get(row, col)
	if err != nil {
		return err
	}

	if current != EmptyCell {
		return fmt.Errorf("%w: (%d, %d) owned by %s", apperror.ErrCellOccupied, row, col, current)
	}

	that[row][col] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}
