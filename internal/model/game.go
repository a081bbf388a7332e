package model

import "time"

// GameID uniquely identifies a completed game record
type GameID string

// DefaultGameName is used when a recorded game does not name itself.
const DefaultGameName = "Memory Match"

// Game is an immutable record of one completed play session.
// It is only ever created, listed, and deleted.
type Game struct {
	ID       GameID
	PlayerID PlayerID
	GameType GameType
	GameName string
	Score    int
	PlayedAt time.Time
}
