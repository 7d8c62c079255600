package mines

import "errors"

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrUnknownAction     = errors.New("unknown action")
	ErrNoSession         = errors.New("no session")
)
