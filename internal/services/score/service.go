package score

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"memorymatch/internal/dependencies/clock"
	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Service records completed-game results. Records are append-only:
// created, listed, deleted, never mutated.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new score service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Record inserts a completed-game result for an existing player.
func (s *Service) Record(ctx context.Context, playerID model.PlayerID, gameType model.GameType, score int, gameName string) (*model.Game, error) {
	if !gameType.Valid() {
		return nil, model.ErrInvalidGameType
	}
	if score < 0 {
		return nil, model.ErrInvalidScore
	}
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	if gameName == "" {
		gameName = model.DefaultGameName
	}

	game := &model.Game{
		ID:       model.GameID(uuid.NewString()),
		PlayerID: playerID,
		GameType: gameType,
		GameName: gameName,
		Score:    score,
		PlayedAt: s.clock.Now(),
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	s.logger.Info("game recorded",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("game_type", string(gameType)),
		slog.Int("score", score),
	)
	return game, nil
}

// List returns games matching the filter, most recent first.
func (s *Service) List(ctx context.Context, filter storage.GameFilter) ([]*model.Game, error) {
	if filter.GameType != "" && !filter.GameType.Valid() {
		return nil, model.ErrInvalidGameType
	}
	return s.storage.ListGames(ctx, filter)
}

// Get returns a single completed game by ID.
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// Delete removes a completed-game record.
func (s *Service) Delete(ctx context.Context, id model.GameID) error {
	return s.storage.DeleteGame(ctx, id)
}
