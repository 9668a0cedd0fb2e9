package core

import (
	"errors"
	"fmt"
)

// Format error codes reported by ParseLevel.
const (
	CodeEmpty           = "EMPTY"
	CodeRaggedRow       = "RAGGED_ROW"
	CodeUnknownChar     = "UNKNOWN_CHAR"
	CodeDuplicatePlayer = "DUPLICATE_PLAYER"
)

// ErrMissingPlayer is returned by NewWorld when the level has no '@' spawn.
var ErrMissingPlayer = errors.New("level has no player spawn")

// LevelFormatError describes why a level text could not be parsed.
// Row and Col are 0-based; Col is -1 when the error concerns a whole row.
type LevelFormatError struct {
	Code    string
	Row     int
	Col     int
	Message string
}

func (e *LevelFormatError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("[%s] row %d: %s", e.Code, e.Row+1, e.Message)
	}
	return fmt.Sprintf("[%s] row %d, col %d: %s", e.Code, e.Row+1, e.Col+1, e.Message)
}
