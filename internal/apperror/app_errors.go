package apperror

import "errors"

var (
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameFinished = errors.New("game is already finished")
	ErrColumnFull   = errors.New("column is full")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrInvalidColumn  = errors.New("invalid column")
	ErrInvalidCommand = errors.New("invalid command")
	ErrOutOfBounds    = errors.New("cell is out of board bounds")

	ErrInvalidName        = errors.New("invalid player name")
	ErrSameMarker         = errors.New("players must have different markers")
	ErrOpponentAlreadySet = errors.New("opponent is already set")
)
