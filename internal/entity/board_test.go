package entity

import (
	"testing"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Get(t *testing.T) {
	t.Run("Returns the owner of a claimed cell", func(t *testing.T) {
		// Given: a board with the bottom-left cell owned by BLUE
		var board Board
		board[Rows-1][0] = MarkBlue

		// When: reading that cell
		mark, err := board.Get(Rows-1, 0)

		// Then: BLUE is returned
		require.NoError(t, err)
		assert.Equal(t, MarkBlue, mark)
	})

	t.Run("Returns EmptyCell for an unclaimed cell", func(t *testing.T) {
		var board Board

		mark, err := board.Get(0, 0)

		require.NoError(t, err)
		assert.Equal(t, EmptyCell, mark)
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		var board Board

		for _, coords := range [][2]int{{-1, 0}, {0, -1}, {Rows, 0}, {0, Cols}} {
			_, err := board.Get(coords[0], coords[1])
			assert.ErrorIs(t, err, apperror.ErrOutOfBounds, "coords %v", coords)
		}
	})
}

func TestBoard_Set(t *testing.T) {
	t.Run("Claims an empty cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: RED claims (3, 4)
		err := board.Set(3, 4, MarkRed)

		// Then: the cell belongs to RED
		require.NoError(t, err)
		assert.Equal(t, MarkRed, board[3][4])
	})

	t.Run("Never reassigns an occupied cell", func(t *testing.T) {
		// Given: a cell already owned by BLUE
		var board Board
		require.NoError(t, board.Set(5, 8, MarkBlue))

		// When: RED tries to claim it
		err := board.Set(5, 8, MarkRed)

		// Then: ErrCellOccupied is returned and the owner is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkBlue, board[5][8])
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		var board Board

		err := board.Set(Rows, 0, MarkBlue)

		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		assert.Equal(t, Board{}, board)
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		var board Board

		assert.False(t, board.IsFull())
	})

	t.Run("Board with one free cell is not full", func(t *testing.T) {
		board := filledBoard()
		board[0][Cols-1] = EmptyCell

		assert.False(t, board.IsFull())
	})

	t.Run("Board with every cell claimed is full", func(t *testing.T) {
		board := filledBoard()

		assert.True(t, board.IsFull())
	})
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(0, 0))
	assert.Equal(t, 8, Index(0, 8))
	assert.Equal(t, 45, Index(5, 0))
	assert.Equal(t, Cells-1, Index(Rows-1, Cols-1))
}

func filledBoard() Board {
	var board Board
	for row := range Rows {
		for col := range Cols {
			if (row+col)%2 == 0 {
				board[row][col] = MarkBlue
			} else {
				board[row][col] = MarkRed
			}
		}
	}

	return board
}
