package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	nameIndex map[string]model.PlayerID
	games     map[model.GameID]*model.Game
	progress  map[progressKey]*model.GameProgress
}

type progressKey struct {
	playerID model.PlayerID
	gameType model.GameType
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[string]model.PlayerID),
		games:     make(map[model.GameID]*model.Game),
		progress:  make(map[progressKey]*model.GameProgress),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.nameIndex[player.Name]; ok && existing != player.ID {
		return model.ErrNameTaken
	}
	if prev, ok := s.players[player.ID]; ok && prev.Name != player.Name {
		delete(s.nameIndex, prev.Name)
	}
	s.players[player.ID] = player
	s.nameIndex[player.Name] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Storage) PlayerNameExists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nameIndex[name]
	return ok, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.nameIndex, player.Name)
	delete(s.players, id)
	for gid, game := range s.games {
		if game.PlayerID == id {
			delete(s.games, gid)
		}
	}
	for key := range s.progress {
		if key.playerID == id {
			delete(s.progress, key)
		}
	}
	return nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) ListGames(ctx context.Context, filter storage.GameFilter) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0)
	for _, game := range s.games {
		if filter.PlayerID != "" && game.PlayerID != filter.PlayerID {
			continue
		}
		if filter.GameType != "" && game.GameType != filter.GameType {
			continue
		}
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].PlayedAt.After(games[j].PlayedAt)
	})
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

// Progress operations

func (s *Storage) GetProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType) (*model.GameProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress, ok := s.progress[progressKey{playerID: playerID, gameType: gameType}]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	return progress.Clone(), nil
}

// UpsertProgress is a read-modify-write under the write lock, so concurrent
// upserts for the same pair serialize and exactly one write set wins. The
// returned record is a clone; later saves never mutate it.
func (s *Storage) UpsertProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType, upd model.ProgressUpdate, now time.Time) (*model.GameProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{playerID: playerID, gameType: gameType}
	progress, ok := s.progress[key]
	if !ok {
		progress = model.NewGameProgress(playerID, gameType, now)
		s.progress[key] = progress
	}
	progress.Apply(upd, now)
	return progress.Clone(), nil
}
