package lexpos

import "errors"

var (
	// ErrInvalidIndex is returned when a Position is constructed with a
	// non-positive index.
	ErrInvalidIndex = errors.New("index must be positive")

	// ErrShortBuffer is returned when a buffer is too small to contain a
	// PrimaryKey's fixed-width encoding.
	ErrShortBuffer = errors.New("short buffer")

	// ErrBadFrame is returned when an encoded Position's length does not
	// match any valid frame (identifier plus a 1, 2 or 4 byte index).
	ErrBadFrame = errors.New("bad position frame")
)
