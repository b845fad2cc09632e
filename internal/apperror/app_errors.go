package apperror

import "errors"

var (
	ErrInviteNotFound  = errors.New("invite not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("forbidden")
	ErrGameOver        = errors.New("game is already over")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrIllegalMove     = errors.New("illegal move")
	ErrAlreadyMoved    = errors.New("already moved this round")
	ErrVersionConflict = errors.New("session version conflict")
	ErrInvalidInvite   = errors.New("invalid invite")
	ErrUnknownGameKind = errors.New("unknown game kind")
)
