package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"memorymatch/internal/model"
	"memorymatch/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) newPlayer(id, name string) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		Name:      name,
		Level:     1,
		CreatedAt: s.now,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.newPlayer("player-1", "Alice")

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByName() {
	_ = s.storage.SavePlayer(s.ctx, s.newPlayer("player-1", "Alice"))

	retrieved, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.ID)
}

func (s *StorageSuite) TestPlayerNameExists() {
	exists, err := s.storage.PlayerNameExists(s.ctx, "Alice")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SavePlayer(s.ctx, s.newPlayer("player-1", "Alice"))

	exists, err = s.storage.PlayerNameExists(s.ctx, "Alice")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestSavePlayerDuplicateName() {
	_ = s.storage.SavePlayer(s.ctx, s.newPlayer("player-1", "Alice"))

	err := s.storage.SavePlayer(s.ctx, s.newPlayer("player-2", "Alice"))
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerUpdateKeepsName() {
	player := s.newPlayer("player-1", "Alice")
	_ = s.storage.SavePlayer(s.ctx, player)

	player.Score = 99
	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, _ := s.storage.GetPlayer(s.ctx, "player-1")
	s.Equal(99, retrieved.Score)
}

func (s *StorageSuite) TestSavePlayerRenameFreesOldName() {
	player := s.newPlayer("player-1", "Alice")
	_ = s.storage.SavePlayer(s.ctx, player)

	player.Name = "Alina"
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	exists, _ := s.storage.PlayerNameExists(s.ctx, "Alice")
	s.False(exists)
	exists, _ = s.storage.PlayerNameExists(s.ctx, "Alina")
	s.True(exists)
}

func (s *StorageSuite) TestListPlayersOldestFirst() {
	first := s.newPlayer("player-1", "Alice")
	second := s.newPlayer("player-2", "Bob")
	second.CreatedAt = s.now.Add(time.Minute)
	_ = s.storage.SavePlayer(s.ctx, second)
	_ = s.storage.SavePlayer(s.ctx, first)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("player-1"), players[0].ID)
	s.Equal(model.PlayerID("player-2"), players[1].ID)
}

func (s *StorageSuite) TestDeletePlayerCascades() {
	_ = s.storage.SavePlayer(s.ctx, s.newPlayer("player-1", "Alice"))
	_ = s.storage.SaveGame(s.ctx, &model.Game{
		ID:       "game-1",
		PlayerID: "player-1",
		GameType: model.GameTypeCard,
		PlayedAt: s.now,
	})
	_, _ = s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{}, s.now)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.ErrorIs(err, model.ErrProgressNotFound)

	exists, _ := s.storage.PlayerNameExists(s.ctx, "Alice")
	s.False(exists)
}

func (s *StorageSuite) TestDeletePlayerNotFound() {
	err := s.storage.DeletePlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestListGamesMostRecentFirst() {
	_ = s.storage.SavePlayer(s.ctx, s.newPlayer("player-1", "Alice"))
	for i, id := range []model.GameID{"game-1", "game-2", "game-3"} {
		_ = s.storage.SaveGame(s.ctx, &model.Game{
			ID:       id,
			PlayerID: "player-1",
			GameType: model.GameTypeCard,
			PlayedAt: s.now.Add(time.Duration(i) * time.Minute),
		})
	}

	games, err := s.storage.ListGames(s.ctx, storage.GameFilter{})
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("game-3"), games[0].ID)
	s.Equal(model.GameID("game-1"), games[2].ID)
}

func (s *StorageSuite) TestListGamesFiltered() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", PlayerID: "player-1", GameType: model.GameTypeCard, PlayedAt: s.now})
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", PlayerID: "player-2", GameType: model.GameTypeChimp, PlayedAt: s.now})

	games, err := s.storage.ListGames(s.ctx, storage.GameFilter{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("game-1"), games[0].ID)

	games, err = s.storage.ListGames(s.ctx, storage.GameFilter{GameType: model.GameTypeChimp})
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("game-2"), games[0].ID)
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", PlayerID: "player-1", GameType: model.GameTypeCard, PlayedAt: s.now})

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Progress tests

func (s *StorageSuite) TestGetProgressNotFound() {
	_, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.ErrorIs(err, model.ErrProgressNotFound)
}

func (s *StorageSuite) TestUpsertProgressCreatesWithDefaults() {
	level := 3
	progress, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{CurrentLevel: &level}, s.now)
	s.Require().NoError(err)

	s.Equal(3, progress.CurrentLevel)
	s.Equal(0, progress.Score)
	s.Empty(progress.CardImages)
	s.Empty(progress.FlippedCards)
	s.Empty(progress.MatchedCards)
	s.Equal(s.now, progress.UpdatedAt)
}

func (s *StorageSuite) TestUpsertProgressKeepsSingleRecord() {
	first := 10
	second := 20
	_, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{Score: &first}, s.now)
	s.Require().NoError(err)
	_, err = s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{Score: &second}, s.now.Add(time.Minute))
	s.Require().NoError(err)

	progress, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.Require().NoError(err)
	s.Equal(20, progress.Score)
	s.Len(s.storage.progress, 1)
}

func (s *StorageSuite) TestUpsertProgressPartialUpdate() {
	level := 2
	score := 50
	cards := []string{"a", "b", "c", "d"}
	_, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{
		CurrentLevel: &level,
		Score:        &score,
		CardImages:   cards,
	}, s.now)
	s.Require().NoError(err)

	// Only score changes; level and cards stay
	newScore := 75
	progress, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{Score: &newScore}, s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.Equal(2, progress.CurrentLevel)
	s.Equal(75, progress.Score)
	s.Equal(cards, progress.CardImages)
	s.Equal(s.now.Add(time.Minute), progress.UpdatedAt)
}

func (s *StorageSuite) TestUpsertProgressReturnsDetachedRecord() {
	first := 10
	kept, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{
		Score:      &first,
		CardImages: []string{"a", "b"},
	}, s.now)
	s.Require().NoError(err)

	second := 20
	_, err = s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{
		Score:      &second,
		CardImages: []string{"c", "d"},
	}, s.now.Add(time.Minute))
	s.Require().NoError(err)

	// The record handed to the first caller must not see the second write
	s.Equal(10, kept.Score)
	s.Equal([]string{"a", "b"}, kept.CardImages)
	s.Equal(s.now, kept.UpdatedAt)

	fetched, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.Require().NoError(err)
	fetched.Score = 999
	fetched.CardImages[0] = "mutated"

	fresh, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.Require().NoError(err)
	s.Equal(20, fresh.Score)
	s.Equal([]string{"c", "d"}, fresh.CardImages)
}

func (s *StorageSuite) TestUpsertProgressConcurrentWritersSerialize() {
	const writers = 16

	var wg sync.WaitGroup
	results := make([]*model.GameProgress, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			score := (i + 1) * 100
			level := i + 1
			progress, err := s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{
				CurrentLevel: &level,
				Score:        &score,
				MatchedCards: []string{"card", string(rune('a' + i))},
			}, s.now.Add(time.Duration(i)*time.Second))
			s.NoError(err)
			results[i] = progress
		}(i)
	}
	wg.Wait()

	// Each writer observed its own write applied, and reads of the returned
	// record are stable afterwards
	for i, progress := range results {
		s.Require().NotNil(progress)
		s.Equal((i+1)*100, progress.Score)
		s.Equal(i+1, progress.CurrentLevel)
	}

	// Exactly one record remains and its field set belongs to a single writer
	s.Len(s.storage.progress, 1)
	final, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.Require().NoError(err)
	winner := final.Score/100 - 1
	s.Require().GreaterOrEqual(winner, 0)
	s.Require().Less(winner, writers)
	s.Equal(winner+1, final.CurrentLevel)
	s.Equal([]string{"card", string(rune('a' + winner))}, final.MatchedCards)
	s.Equal(s.now.Add(time.Duration(winner)*time.Second), final.UpdatedAt)
}

func (s *StorageSuite) TestProgressPairsAreIndependent() {
	score := 10
	_, _ = s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeCard, model.ProgressUpdate{Score: &score}, s.now)
	_, _ = s.storage.UpsertProgress(s.ctx, "player-1", model.GameTypeSequence, model.ProgressUpdate{}, s.now)

	card, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeCard)
	s.Require().NoError(err)
	s.Equal(10, card.Score)

	seq, err := s.storage.GetProgress(s.ctx, "player-1", model.GameTypeSequence)
	s.Require().NoError(err)
	s.Equal(0, seq.Score)
}
