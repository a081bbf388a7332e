package progress

import (
	"context"
	"log/slog"

	"memorymatch/internal/dependencies/clock"
	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Service persists in-flight game-board state so a player can resume a
// session. All atomicity for the (player, game type) key is delegated to
// the store's upsert primitive; the service itself holds no state.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new progress service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Get returns the unique progress record for the pair, or
// model.ErrProgressNotFound if the player has not saved yet.
func (s *Service) Get(ctx context.Context, playerID model.PlayerID, gameType model.GameType) (*model.GameProgress, error) {
	if !gameType.Valid() {
		return nil, model.ErrInvalidGameType
	}
	return s.storage.GetProgress(ctx, playerID, gameType)
}

// Save upserts the progress record for the pair. Fields omitted from upd
// stay unchanged on an existing record and get creation defaults on a new
// one. The referenced player must exist.
func (s *Service) Save(ctx context.Context, playerID model.PlayerID, gameType model.GameType, upd model.ProgressUpdate) (*model.GameProgress, error) {
	if !gameType.Valid() {
		return nil, model.ErrInvalidGameType
	}
	if upd.CurrentLevel != nil && *upd.CurrentLevel < 1 {
		return nil, model.ErrInvalidLevel
	}
	if upd.Score != nil && *upd.Score < 0 {
		return nil, model.ErrInvalidScore
	}
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	progress, err := s.storage.UpsertProgress(ctx, playerID, gameType, upd, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("progress saved",
		slog.String("player_id", string(playerID)),
		slog.String("game_type", string(gameType)),
		slog.Int("current_level", progress.CurrentLevel),
		slog.Int("score", progress.Score),
	)
	return progress, nil
}
