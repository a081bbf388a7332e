package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"memorymatch/internal/dependencies/mocks"
	"memorymatch/internal/model"
	"memorymatch/internal/storage/memory"
	"memorymatch/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// CheckName tests

func (s *ServiceSuite) TestCheckNameBeforeAndAfterCreate() {
	exists, err := s.service.CheckName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.service.Create(s.ctx, "Alice", "", "")
	s.Require().NoError(err)

	exists, err = s.service.CheckName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.True(exists)
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	player, err := s.service.Create(s.ctx, "Alice", "alice@example.com", "")
	s.Require().NoError(err)

	s.NotEmpty(player.ID)
	s.Equal("Alice", player.Name)
	s.Equal("alice@example.com", player.Email)
	s.Equal(1, player.Level)
	s.Equal(0, player.Score)
	s.Equal(s.clock.Now(), player.CreatedAt)
	s.Empty(player.PasswordHash)
}

func (s *ServiceSuite) TestCreateDuplicateName() {
	_, err := s.service.Create(s.ctx, "Alice", "", "")
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, "Alice", "", "")
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestCreateEmptyName() {
	_, err := s.service.Create(s.ctx, "", "", "")
	s.ErrorIs(err, model.ErrInvalidName)

	players, listErr := s.service.List(s.ctx)
	s.Require().NoError(listErr)
	s.Empty(players)
}

func (s *ServiceSuite) TestCreateHashesPassword() {
	player, err := s.service.Create(s.ctx, "Alice", "", "hunter2")
	s.Require().NoError(err)

	s.NotEqual("hunter2", player.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte("hunter2")))
}

// UpdateStats tests

func (s *ServiceSuite) TestUpdateStatsPartial() {
	player, _ := s.service.Create(s.ctx, "Alice", "", "")

	level := 4
	updated, err := s.service.UpdateStats(s.ctx, player.ID, &level, nil)
	s.Require().NoError(err)
	s.Equal(4, updated.Level)
	s.Equal(0, updated.Score)

	score := 120
	updated, err = s.service.UpdateStats(s.ctx, player.ID, nil, &score)
	s.Require().NoError(err)
	s.Equal(4, updated.Level)
	s.Equal(120, updated.Score)
}

func (s *ServiceSuite) TestUpdateStatsValidation() {
	player, _ := s.service.Create(s.ctx, "Alice", "", "")

	badLevel := 0
	_, err := s.service.UpdateStats(s.ctx, player.ID, &badLevel, nil)
	s.ErrorIs(err, model.ErrInvalidLevel)

	badScore := -1
	_, err = s.service.UpdateStats(s.ctx, player.ID, nil, &badScore)
	s.ErrorIs(err, model.ErrInvalidScore)
}

func (s *ServiceSuite) TestUpdateStatsUnknownPlayer() {
	level := 2
	_, err := s.service.UpdateStats(s.ctx, "nonexistent", &level, nil)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Delete tests

func (s *ServiceSuite) TestDeleteRemovesPlayer() {
	player, _ := s.service.Create(s.ctx, "Alice", "", "")

	s.Require().NoError(s.service.Delete(s.ctx, player.ID))

	_, err := s.service.Get(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// The name is free again
	exists, _ := s.service.CheckName(s.ctx, "Alice")
	s.False(exists)
}

func (s *ServiceSuite) TestDeleteUnknownPlayer() {
	err := s.service.Delete(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// List tests

func (s *ServiceSuite) TestListOrdersByCreation() {
	_, _ = s.service.Create(s.ctx, "Alice", "", "")
	s.clock.Advance(time.Minute)
	_, _ = s.service.Create(s.ctx, "Bob", "", "")

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
}
