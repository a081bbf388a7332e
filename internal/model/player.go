package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is the root entity: games and progress records belong to exactly
// one player and are removed with it.
type Player struct {
	ID           PlayerID
	Name         string // unique across all players
	Email        string
	PasswordHash string // bcrypt hash; empty if no password was supplied
	Level        int    // highest level reached, >= 1
	Score        int    // aggregate score, >= 0
	CreatedAt    time.Time
}
