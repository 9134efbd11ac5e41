package model

import "errors"

var (
	// ErrOutOfBounds means a square outside the 8x8 board reached the engine.
	// Callers are expected to validate coordinates first.
	ErrOutOfBounds = errors.New("square out of bounds")
	// ErrInvariantViolation means the board is corrupted, e.g. two kings of one color.
	ErrInvariantViolation = errors.New("board invariant violated")
	ErrInvalidFEN         = errors.New("invalid FEN")
)
