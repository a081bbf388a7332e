package redis

import (
	"fmt"

	"memorymatch/internal/model"
)

// Key prefixes for each entity type. Index keys let us enumerate games
// and cascade player deletions without scanning the keyspace.

func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("player:%s", id)
}

func nameIndexKey(name string) string {
	return fmt.Sprintf("player_name:%s", name)
}

const playersIndexKey = "players:index"

func gameKey(id model.GameID) string {
	return fmt.Sprintf("game:%s", id)
}

const gamesIndexKey = "games:index"

func playerGamesKey(id model.PlayerID) string {
	return fmt.Sprintf("player_games:%s", id)
}

func progressKey(playerID model.PlayerID, gameType model.GameType) string {
	return fmt.Sprintf("progress:%s:%s", playerID, gameType)
}

func playerProgressKey(id model.PlayerID) string {
	return fmt.Sprintf("player_progress:%s", id)
}
