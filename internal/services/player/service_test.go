package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jcaldw/trickortreth/internal/dependencies/mocks"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage/memory"
	"github.com/jcaldw/trickortreth/internal/testutil"
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
	s.clock = mocks.NewMockClock(time.Date(2025, 10, 31, 18, 0, 0, 0, time.UTC))
	s.service = NewService(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestUpsertCreates() {
	p, err := s.service.Upsert(s.ctx, 7, "0xabc", "Ghost", "https://example.com/ghost.png")
	s.Require().NoError(err)

	s.Equal(model.FID(7), p.FID)
	s.Equal("0xabc", p.WalletAddress)
	s.Equal("Ghost", p.DisplayName)
	s.Equal("https://example.com/ghost.png", p.AvatarURL)
	s.Equal(s.clock.Now(), p.CreatedAt)
}

func (s *ServiceSuite) TestUpsertUpdatesExisting() {
	created, err := s.service.Upsert(s.ctx, 7, "0xabc", "Ghost", "old.png")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	updated, err := s.service.Upsert(s.ctx, 7, "", "Spooky Ghost", "new.png")
	s.Require().NoError(err)

	s.Equal("Spooky Ghost", updated.DisplayName)
	s.Equal("new.png", updated.AvatarURL)
	// Empty fields keep the stored value; CreatedAt is never touched
	s.Equal("0xabc", updated.WalletAddress)
	s.Equal(created.CreatedAt, updated.CreatedAt)
}

func (s *ServiceSuite) TestUpsertAvatarOnlyKeepsProfile() {
	_, err := s.service.Upsert(s.ctx, 7, "0xabc", "Ghost", "old.png")
	s.Require().NoError(err)

	p, err := s.service.Upsert(s.ctx, 7, "", "", "fresh.png")
	s.Require().NoError(err)

	s.Equal("fresh.png", p.AvatarURL)
	s.Equal("Ghost", p.DisplayName)
	s.Equal("0xabc", p.WalletAddress)
}

func (s *ServiceSuite) TestGetUnknownFails() {
	_, err := s.service.Get(s.ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListNewestFirst() {
	_, err := s.service.Upsert(s.ctx, 7, "", "First", "")
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.Upsert(s.ctx, 8, "", "Second", "")
	s.Require().NoError(err)

	players, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.FID(8), players[0].FID)
	s.Equal(model.FID(7), players[1].FID)
}
