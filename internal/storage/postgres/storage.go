package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
// built on gorm.
type Storage struct {
	db *gorm.DB
}

// New creates a storage helper over an opened gorm DB.
func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	rec := playerRecord(player)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrNameTaken
	}
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var rec Player
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return playerModel(&rec), nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	var rec Player
	if err := s.db.WithContext(ctx).First(&rec, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return playerModel(&rec), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	var recs []Player
	if err := s.db.WithContext(ctx).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	players := make([]*model.Player, len(recs))
	for i := range recs {
		players[i] = playerModel(&recs[i])
	}
	return players, nil
}

func (s *Storage) PlayerNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Player{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeletePlayer removes the player row; games and progress rows follow via
// the OnDelete:CASCADE constraints.
func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res := s.db.WithContext(ctx).Delete(&Player{}, "id = ?", string(id))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	rec := gameRecord(game)
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var rec Game
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return gameModel(&rec), nil
}

func (s *Storage) ListGames(ctx context.Context, filter storage.GameFilter) ([]*model.Game, error) {
	q := s.db.WithContext(ctx).Model(&Game{})
	if filter.PlayerID != "" {
		q = q.Where("player_id = ?", string(filter.PlayerID))
	}
	if filter.GameType != "" {
		q = q.Where("game_type = ?", string(filter.GameType))
	}

	var recs []Game
	if err := q.Order("played_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	games := make([]*model.Game, len(recs))
	for i := range recs {
		games[i] = gameModel(&recs[i])
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	res := s.db.WithContext(ctx).Delete(&Game{}, "id = ?", string(id))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

// Progress operations

func (s *Storage) GetProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType) (*model.GameProgress, error) {
	var rec Progress
	err := s.db.WithContext(ctx).
		First(&rec, "player_id = ? AND game_type = ?", string(playerID), string(gameType)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}
	return progressModel(&rec)
}

// UpsertProgress leans on the composite unique index: a single
// INSERT ... ON CONFLICT DO UPDATE applies only the supplied fields, so
// concurrent saves for the same pair serialize inside the database.
func (s *Storage) UpsertProgress(ctx context.Context, playerID model.PlayerID, gameType model.GameType, upd model.ProgressUpdate, now time.Time) (*model.GameProgress, error) {
	fresh := model.NewGameProgress(playerID, gameType, now)
	fresh.Apply(upd, now)
	rec := progressRecord(fresh)

	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "game_type"}},
			DoUpdates: clause.Assignments(progressAssignments(upd, now)),
		}).
		Create(&rec).Error
	if err != nil {
		return nil, err
	}

	return s.GetProgress(ctx, playerID, gameType)
}

// progressAssignments builds the ON CONFLICT update set from the supplied
// fields only, leaving omitted fields untouched on an existing row.
func progressAssignments(upd model.ProgressUpdate, now time.Time) map[string]any {
	assignments := map[string]any{"updated_at": now}
	if upd.CurrentLevel != nil {
		assignments["current_level"] = *upd.CurrentLevel
	}
	if upd.Score != nil {
		assignments["score"] = *upd.Score
	}
	if upd.CardImages != nil {
		assignments["card_images"] = encodeCards(upd.CardImages)
	}
	if upd.FlippedCards != nil {
		assignments["flipped_cards"] = encodeCards(upd.FlippedCards)
	}
	if upd.MatchedCards != nil {
		assignments["matched_cards"] = encodeCards(upd.MatchedCards)
	}
	return assignments
}

// Record conversions

func playerRecord(p *model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Level:        p.Level,
		Score:        p.Score,
		CreatedAt:    p.CreatedAt,
	}
}

func playerModel(rec *Player) *model.Player {
	return &model.Player{
		ID:           model.PlayerID(rec.ID),
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Level:        rec.Level,
		Score:        rec.Score,
		CreatedAt:    rec.CreatedAt,
	}
}

func gameRecord(g *model.Game) Game {
	return Game{
		ID:       string(g.ID),
		PlayerID: string(g.PlayerID),
		GameType: string(g.GameType),
		GameName: g.GameName,
		Score:    g.Score,
		PlayedAt: g.PlayedAt,
	}
}

func gameModel(rec *Game) *model.Game {
	return &model.Game{
		ID:       model.GameID(rec.ID),
		PlayerID: model.PlayerID(rec.PlayerID),
		GameType: model.GameType(rec.GameType),
		GameName: rec.GameName,
		Score:    rec.Score,
		PlayedAt: rec.PlayedAt,
	}
}

func progressRecord(p *model.GameProgress) Progress {
	return Progress{
		PlayerID:     string(p.PlayerID),
		GameType:     string(p.GameType),
		CurrentLevel: p.CurrentLevel,
		Score:        p.Score,
		CardImages:   encodeCards(p.CardImages),
		FlippedCards: encodeCards(p.FlippedCards),
		MatchedCards: encodeCards(p.MatchedCards),
		UpdatedAt:    p.UpdatedAt,
	}
}

func progressModel(rec *Progress) (*model.GameProgress, error) {
	cardImages, err := decodeCards(rec.CardImages)
	if err != nil {
		return nil, err
	}
	flipped, err := decodeCards(rec.FlippedCards)
	if err != nil {
		return nil, err
	}
	matched, err := decodeCards(rec.MatchedCards)
	if err != nil {
		return nil, err
	}
	return &model.GameProgress{
		PlayerID:     model.PlayerID(rec.PlayerID),
		GameType:     model.GameType(rec.GameType),
		CurrentLevel: rec.CurrentLevel,
		Score:        rec.Score,
		CardImages:   cardImages,
		FlippedCards: flipped,
		MatchedCards: matched,
		UpdatedAt:    rec.UpdatedAt,
	}, nil
}

// Card lists are stored as JSON text columns.

func encodeCards(cards []string) string {
	if cards == nil {
		cards = []string{}
	}
	data, _ := json.Marshal(cards)
	return string(data)
}

func decodeCards(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var cards []string
	if err := json.Unmarshal([]byte(data), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
