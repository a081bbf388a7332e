package postgres

import "time"

// Player is the players table. Name carries the authoritative uniqueness
// constraint backing the registration pre-check.
type Player struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Name         string `gorm:"size:100;uniqueIndex"`
	Email        string `gorm:"size:100"`
	PasswordHash string
	Level        int
	Score        int
	CreatedAt    time.Time
}

// Game is a completed play session row.
type Game struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	PlayerID string `gorm:"type:uuid;index"`
	Player   Player `gorm:"constraint:OnDelete:CASCADE;"`
	GameType string `gorm:"size:20;index"`
	GameName string `gorm:"size:100"`
	Score    int
	PlayedAt time.Time `gorm:"index"`
}

// Progress holds in-flight session state. The composite unique index is
// what makes the (player, game type) upsert atomic.
type Progress struct {
	ID           uint   `gorm:"primaryKey"`
	PlayerID     string `gorm:"type:uuid;uniqueIndex:idx_player_game_type"`
	Player       Player `gorm:"constraint:OnDelete:CASCADE;"`
	GameType     string `gorm:"size:20;uniqueIndex:idx_player_game_type"`
	CurrentLevel int
	Score        int
	CardImages   string // JSON-encoded []string
	FlippedCards string // JSON-encoded []string
	MatchedCards string // JSON-encoded []string
	UpdatedAt    time.Time
}
