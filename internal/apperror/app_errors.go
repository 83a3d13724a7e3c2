package apperror

import "errors"

var (
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidStep  = errors.New("invalid step")
	ErrGameNotFound = errors.New("game not found")
	ErrCorruptState = errors.New("corrupt game state")
)

// IsInvalidArgument reports whether err was caused by a caller passing a bad index.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidCell) || errors.Is(err, ErrInvalidStep)
}
