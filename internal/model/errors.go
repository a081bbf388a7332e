package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameTaken      = errors.New("name already taken")
	ErrInvalidName    = errors.New("name must not be empty")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidGameType = errors.New("invalid game type")
	ErrInvalidScore    = errors.New("score must not be negative")
	ErrInvalidLevel    = errors.New("level must be at least 1")

	// Progress errors
	ErrProgressNotFound = errors.New("progress not found")
)
