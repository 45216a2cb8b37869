package game

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrUnknownColor = errors.New("unknown color")
	ErrSameColor    = errors.New("players must pick different colors")
	ErrInvalidName  = errors.New("invalid player name")
	ErrBadPalette   = errors.New("palette needs at least two distinct colors")
)
