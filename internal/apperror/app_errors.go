package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrColumnFull        = errors.New("column is full")
	ErrGameFull          = errors.New("game is full")
	ErrAlreadyJoined     = errors.New("player is already in the game")
	ErrNotAMember        = errors.New("player is not in the game")
	ErrAlreadyRegistered = errors.New("player is already registered")
)
