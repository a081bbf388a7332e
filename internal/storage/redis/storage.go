package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Honour name uniqueness at the store level
	ownerID, err := s.client.Get(ctx, nameIndexKey(player.Name)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && model.PlayerID(ownerID) != player.ID {
		return model.ErrNameTaken
	}

	// Drop a stale name index entry if the player was renamed
	var staleName string
	if prev, err := s.GetPlayer(ctx, player.ID); err == nil && prev.Name != player.Name {
		staleName = prev.Name
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, nameIndexKey(player.Name), string(player.ID), 0)
	pipe.SAdd(ctx, playersIndexKey, string(player.ID))
	if staleName != "" {
		pipe.Del(ctx, nameIndexKey(staleName))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	id, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].CreatedAt.Before(players[j].CreatedAt)
	})
	return players, nil
}

func (s *Storage) PlayerNameExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.client.Exists(ctx, nameIndexKey(name)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	gameIDs, err := s.client.SMembers(ctx, playerGamesKey(id)).Result()
	if err != nil {
		return err
	}
	progressKeys, err := s.client.SMembers(ctx, playerProgressKey(id)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.Del(ctx, nameIndexKey(player.Name))
	pipe.SRem(ctx, playersIndexKey, string(id))
	for _, gid := range gameIDs {
		pipe.Del(ctx, gameKey(model.GameID(gid)))
		pipe.SRem(ctx, gamesIndexKey, gid)
	}
	pipe.Del(ctx, playerGamesKey(id))
	for _, key := range progressKeys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, playerProgressKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey, string(game.ID))
	pipe.SAdd(ctx, playerGamesKey(game.PlayerID), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context, filter storage.GameFilter) ([]*model.Game, error) {
	indexKey := gamesIndexKey
	if filter.PlayerID != "" {
		indexKey = playerGamesKey(filter.PlayerID)
	}

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				continue
			}
			return nil, err
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
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey, string(id))
	pipe.SRem(ctx, playerGamesKey(game.PlayerID), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Progress operations

func (s *Storage) GetProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType) (*model.GameProgress, error) {
	data, err := s.client.Get(ctx, progressKey(playerID, gameType)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}

	var progress model.GameProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpsertProgress runs an optimistic WATCH transaction on the progress key:
// the read-merge-write is retried when a concurrent writer touches the key,
// so one write set wins whole and the pair never gains a second record.
func (s *Storage) UpsertProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType, upd model.ProgressUpdate, now time.Time) (*model.GameProgress, error) {
	key := progressKey(playerID, gameType)

	var result *model.GameProgress
	txn := func(tx *redis.Tx) error {
		progress := model.NewGameProgress(playerID, gameType, now)
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, progress); err != nil {
				return err
			}
		}
		progress.Apply(upd, now)

		encoded, err := json.Marshal(progress)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.SAdd(ctx, playerProgressKey(playerID), key)
			return nil
		})
		if err != nil {
			return err
		}
		result = progress
		return nil
	}

	retries := s.cfg.UpsertRetries
	if retries <= 0 {
		retries = DefaultConfig().UpsertRetries
	}
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, redis.TxFailedErr
}
