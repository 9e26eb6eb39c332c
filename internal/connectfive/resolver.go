package connectfive

import (
	"fmt"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

// NoRow is returned alongside an error when a drop cannot land.
const NoRow = -1

func ValidateColumn(column int) error {
	if column < 0 || column >= entity.Cols {
		return fmt.Errorf("%w: %d not in [0, %d)", apperror.ErrInvalidColumn, column, entity.Cols)
	}

	return nil
}

// ResolveDrop returns the row a piece dropped into column lands on: the lowest empty cell.
func ResolveDrop(board *entity.Board, column int) (int, error) {
	if err := ValidateColumn(column); err != nil {
		return NoRow, err
	}

	for row := entity.Rows - 1; row >= 0; row-- {
		if board[row][column] == entity.EmptyCell {
			return row, nil
		}
	}

	return NoRow, fmt.Errorf("%w: %d", apperror.ErrColumnFull, column)
}
