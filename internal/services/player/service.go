package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"memorymatch/internal/dependencies/clock"
	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Service guards player registration and owns the player lifecycle.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CheckName reports whether a player with the given name already exists.
// Pure lookup, no side effects.
func (s *Service) CheckName(ctx context.Context, name string) (bool, error) {
	return s.storage.PlayerNameExists(ctx, name)
}

// Create registers a new player. The existence pre-check produces the
// friendly duplicate error; the store's unique constraint remains the
// authoritative backstop against concurrent identical creates.
func (s *Service) Create(ctx context.Context, name, email, password string) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrInvalidName
	}

	exists, err := s.storage.PlayerNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking name: %w", err)
	}
	if exists {
		return nil, model.ErrNameTaken
	}

	var passwordHash string
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		passwordHash = string(hash)
	}

	player := &model.Player{
		ID:           model.PlayerID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Level:        1,
		Score:        0,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
	)
	return player, nil
}

// Get returns a player by ID.
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns all players, oldest first.
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// UpdateStats applies a partial update to a player's level and score.
// Nil fields are left unchanged.
func (s *Service) UpdateStats(ctx context.Context, id model.PlayerID, level, score *int) (*model.Player, error) {
	if level != nil && *level < 1 {
		return nil, model.ErrInvalidLevel
	}
	if score != nil && *score < 0 {
		return nil, model.ErrInvalidScore
	}

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if level != nil {
		player.Level = *level
	}
	if score != nil {
		player.Score = *score
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Delete removes a player and, through the store, every game and progress
// record it owns.
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return err
		}
		return fmt.Errorf("deleting player: %w", err)
	}

	s.logger.Info("player deleted", slog.String("player_id", string(id)))
	return nil
}
