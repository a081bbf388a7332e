package storage

import (
	"context"
	"time"

	"memorymatch/internal/model"
)

// GameFilter narrows a game listing. Zero-valued fields are ignored.
type GameFilter struct {
	PlayerID model.PlayerID
	GameType model.GameType
}

// Storage defines the interface for data persistence.
//
// Implementations must enforce two invariants: player names are unique,
// and at most one progress record exists per (player, game type) pair.
// UpsertProgress must be atomic with respect to concurrent callers for
// the same pair: one write set wins whole, fields never interleave.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	PlayerNameExists(ctx context.Context, name string) (bool, error)
	// DeletePlayer removes the player and cascades to its games and
	// progress records.
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Game operations (completed sessions; append-only)
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	// ListGames returns games matching the filter, most recent first.
	ListGames(ctx context.Context, filter GameFilter) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Progress operations
	GetProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType) (*model.GameProgress, error)
	// UpsertProgress creates the record with defaults for omitted fields,
	// or overwrites exactly the supplied fields on an existing record.
	// It returns the post-write state.
	UpsertProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType, upd model.ProgressUpdate, now time.Time) (*model.GameProgress, error)
}
