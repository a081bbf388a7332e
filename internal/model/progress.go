package model

import (
	"slices"
	"time"
)

// GameProgress is the single mutable in-flight session state for a
// (player, game type) pair. At most one record exists per pair; every
// save overwrites the mutable fields in place, no history is kept.
type GameProgress struct {
	PlayerID     PlayerID
	GameType     GameType
	CurrentLevel int // >= 1
	Score        int // >= 0
	CardImages   []string // full deck layout, ordered
	FlippedCards []string // currently-flipped subset
	MatchedCards []string // already-matched subset
	UpdatedAt    time.Time
}

// ProgressUpdate is a partial write to a progress record. Nil fields are
// left unchanged on an existing record and default-filled on a new one
// (level 1, score 0, empty card lists).
type ProgressUpdate struct {
	CurrentLevel *int
	Score        *int
	CardImages   []string
	FlippedCards []string
	MatchedCards []string
}

// NewGameProgress returns a progress record with creation defaults applied.
func NewGameProgress(playerID PlayerID, gameType GameType, now time.Time) *GameProgress {
	return &GameProgress{
		PlayerID:     playerID,
		GameType:     gameType,
		CurrentLevel: 1,
		Score:        0,
		CardImages:   []string{},
		FlippedCards: []string{},
		MatchedCards: []string{},
		UpdatedAt:    now,
	}
}

// Clone returns a deep copy. Stores that hold live records hand out
// clones so callers never alias state mutated by later saves.
func (p *GameProgress) Clone() *GameProgress {
	c := *p
	c.CardImages = slices.Clone(p.CardImages)
	c.FlippedCards = slices.Clone(p.FlippedCards)
	c.MatchedCards = slices.Clone(p.MatchedCards)
	return &c
}

// Apply overwrites the fields supplied in upd and stamps UpdatedAt.
func (p *GameProgress) Apply(upd ProgressUpdate, now time.Time) {
	if upd.CurrentLevel != nil {
		p.CurrentLevel = *upd.CurrentLevel
	}
	if upd.Score != nil {
		p.Score = *upd.Score
	}
	if upd.CardImages != nil {
		p.CardImages = slices.Clone(upd.CardImages)
	}
	if upd.FlippedCards != nil {
		p.FlippedCards = slices.Clone(upd.FlippedCards)
	}
	if upd.MatchedCards != nil {
		p.MatchedCards = slices.Clone(upd.MatchedCards)
	}
	p.UpdatedAt = now
}
