package request

// CreatePlayerRequest is the request body for registering a player
type CreatePlayerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateStatsRequest is the request body for updating a player's level
// and score. Nil fields are left unchanged.
type UpdateStatsRequest struct {
	Level *int `json:"level"`
	Score *int `json:"score"`
}

// RecordGameRequest is the request body for recording a completed game
type RecordGameRequest struct {
	PlayerID string `json:"player_id"`
	GameType string `json:"game_type"`
	Score    *int   `json:"score"`
	GameName string `json:"game_name,omitempty"`
}

// SaveProgressRequest is the request body for the progress upsert.
// Omitted optional fields are left unchanged on an existing record and
// default-filled on a new one.
type SaveProgressRequest struct {
	PlayerID     string   `json:"player_id"`
	GameType     string   `json:"game_type"`
	CurrentLevel *int     `json:"current_level"`
	Score        *int     `json:"score"`
	CardImages   []string `json:"card_images"`
	FlippedCards []string `json:"flipped_cards"`
	MatchedCards []string `json:"matched_cards"`
}
