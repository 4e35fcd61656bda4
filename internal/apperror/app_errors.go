package apperror

import "errors"

var (
	ErrMalformedCommand = errors.New("row or column out of range")
	ErrIllegalMove      = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrOutOfTurn        = errors.New("it's not your turn")
	ErrNoActiveGame     = errors.New("no active game")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrTransportFailure = errors.New("transport failure")
)
