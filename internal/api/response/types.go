package response

import (
	"time"

	"memorymatch/internal/model"
)

// Player represents a player in API responses. The password hash never
// leaves the server.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Level     int       `json:"level"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Email:     p.Email,
		Level:     p.Level,
		Score:     p.Score,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModels converts a slice of players
func PlayersFromModels(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// CheckNameResponse is the response for the name-existence probe
type CheckNameResponse struct {
	Exists bool `json:"exists"`
}

// Game represents a completed play session in API responses
type Game struct {
	ID              string    `json:"id"`
	PlayerID        string    `json:"player_id"`
	GameType        string    `json:"game_type"`
	GameTypeDisplay string    `json:"game_type_display"`
	GameName        string    `json:"game_name"`
	Score           int       `json:"score"`
	PlayedAt        time.Time `json:"played_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:              string(g.ID),
		PlayerID:        string(g.PlayerID),
		GameType:        string(g.GameType),
		GameTypeDisplay: g.GameType.DisplayName(),
		GameName:        g.GameName,
		Score:           g.Score,
		PlayedAt:        g.PlayedAt,
	}
}

// GamesFromModels converts a slice of games
func GamesFromModels(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// Progress represents in-flight session state in API responses
type Progress struct {
	PlayerID     string    `json:"player_id"`
	GameType     string    `json:"game_type"`
	CurrentLevel int       `json:"current_level"`
	Score        int       `json:"score"`
	CardImages   []string  `json:"card_images"`
	FlippedCards []string  `json:"flipped_cards"`
	MatchedCards []string  `json:"matched_cards"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProgressFromModel converts a model.GameProgress to a response Progress
func ProgressFromModel(p *model.GameProgress) Progress {
	return Progress{
		PlayerID:     string(p.PlayerID),
		GameType:     string(p.GameType),
		CurrentLevel: p.CurrentLevel,
		Score:        p.Score,
		CardImages:   p.CardImages,
		FlippedCards: p.FlippedCards,
		MatchedCards: p.MatchedCards,
		UpdatedAt:    p.UpdatedAt,
	}
}
