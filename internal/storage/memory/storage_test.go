package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) at(min int) time.Time {
	return time.Date(2025, 10, 31, 18, min, 0, 0, time.UTC)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		FID:         7,
		DisplayName: "Ghost",
		AvatarURL:   "https://example.com/ghost.png",
		CreatedAt:   s.at(0),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(player.FID, retrieved.FID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerOverwrites() {
	err := s.storage.SavePlayer(s.ctx, &model.Player{FID: 7, DisplayName: "Ghost", CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SavePlayer(s.ctx, &model.Player{FID: 7, DisplayName: "Spooky", CreatedAt: s.at(0)})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Spooky", retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	err := s.storage.SavePlayer(s.ctx, &model.Player{FID: 7, DisplayName: "Ghost", CreatedAt: s.at(0)})
	s.Require().NoError(err)

	first, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	first.DisplayName = "mutated"

	second, err := s.storage.GetPlayer(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Ghost", second.DisplayName)
}

func (s *StorageSuite) TestListPlayersNewestFirst() {
	err := s.storage.SavePlayer(s.ctx, &model.Player{FID: 7, CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SavePlayer(s.ctx, &model.Player{FID: 8, CreatedAt: s.at(5)})
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.FID(8), players[0].FID)
	s.Equal(model.FID(7), players[1].FID)
}

// Visit tests

func (s *StorageSuite) TestSaveAndGetVisit() {
	visit := &model.Visit{
		ID:           "visit-1",
		VisitorFID:   7,
		HomeownerFID: 3,
		Message:      "Boo!",
		CreatedAt:    s.at(0),
	}

	err := s.storage.SaveVisit(s.ctx, visit)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetVisit(s.ctx, "visit-1")
	s.Require().NoError(err)
	s.Equal(visit.Message, retrieved.Message)
	s.False(retrieved.Seen)
}

func (s *StorageSuite) TestGetVisitNotFound() {
	_, err := s.storage.GetVisit(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrVisitNotFound)
}

func (s *StorageSuite) TestListUnseenVisitsNewestFirst() {
	err := s.storage.SaveVisit(s.ctx, &model.Visit{ID: "a", HomeownerFID: 3, CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SaveVisit(s.ctx, &model.Visit{ID: "b", HomeownerFID: 3, CreatedAt: s.at(5)})
	s.Require().NoError(err)

	visits, err := s.storage.ListUnseenVisits(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(visits, 2)
	s.Equal(model.VisitID("b"), visits[0].ID)
	s.Equal(model.VisitID("a"), visits[1].ID)
}

func (s *StorageSuite) TestListUnseenVisitsExcludesSeen() {
	err := s.storage.SaveVisit(s.ctx, &model.Visit{ID: "a", HomeownerFID: 3, Seen: true, CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SaveVisit(s.ctx, &model.Visit{ID: "b", HomeownerFID: 3, CreatedAt: s.at(1)})
	s.Require().NoError(err)

	visits, err := s.storage.ListUnseenVisits(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(visits, 1)
	s.Equal(model.VisitID("b"), visits[0].ID)
}

func (s *StorageSuite) TestListUnseenVisitsScopedToHomeowner() {
	err := s.storage.SaveVisit(s.ctx, &model.Visit{ID: "a", HomeownerFID: 3, CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SaveVisit(s.ctx, &model.Visit{ID: "b", HomeownerFID: 4, CreatedAt: s.at(1)})
	s.Require().NoError(err)

	visits, err := s.storage.ListUnseenVisits(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(visits, 1)
	s.Equal(model.VisitID("a"), visits[0].ID)
}

func (s *StorageSuite) TestListUnseenVisitsTieBreakByID() {
	err := s.storage.SaveVisit(s.ctx, &model.Visit{ID: "a", HomeownerFID: 3, CreatedAt: s.at(0)})
	s.Require().NoError(err)
	err = s.storage.SaveVisit(s.ctx, &model.Visit{ID: "b", HomeownerFID: 3, CreatedAt: s.at(0)})
	s.Require().NoError(err)

	visits, err := s.storage.ListUnseenVisits(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(visits, 2)
	s.Equal(model.VisitID("b"), visits[0].ID)
	s.Equal(model.VisitID("a"), visits[1].ID)
}

func (s *StorageSuite) TestSaveVisitStoresCopy() {
	visit := &model.Visit{ID: "a", HomeownerFID: 3, Message: "Boo!", CreatedAt: s.at(0)}
	err := s.storage.SaveVisit(s.ctx, visit)
	s.Require().NoError(err)

	visit.Message = "mutated"

	retrieved, err := s.storage.GetVisit(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal("Boo!", retrieved.Message)
}
