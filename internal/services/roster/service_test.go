package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jcaldw/trickortreth/internal/dependencies/mocks"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = NewService(s.random, testutil.NopLogger())
}

func (s *ServiceSuite) players(fids ...model.FID) []*model.Player {
	base := time.Date(2025, 10, 31, 18, 0, 0, 0, time.UTC)
	out := make([]*model.Player, len(fids))
	for i, fid := range fids {
		out[i] = &model.Player{FID: fid, CreatedAt: base}
	}
	return out
}

func (s *ServiceSuite) fids(players []*model.Player) []model.FID {
	out := make([]model.FID, len(players))
	for i, p := range players {
		out[i] = p.FID
	}
	return out
}

func (s *ServiceSuite) TestExcludesViewer() {
	view := s.service.Page(s.players(1, 2, 3), 2, nil, 2, 0)

	s.Equal([]model.FID{1, 3}, s.fids(view.Items))
	s.Equal(1, view.TotalPages)
}

func (s *ServiceSuite) TestAllowListFilter() {
	view := s.service.Page(s.players(1, 2, 3, 4), 1, map[model.FID]bool{2: true, 4: true}, 2, 0)

	s.Equal([]model.FID{2, 4}, s.fids(view.Items))
}

func (s *ServiceSuite) TestAllowListDoesNotExcludeViewer() {
	// Private mode trusts the allow-list as-is
	view := s.service.Page(s.players(1, 2), 1, map[model.FID]bool{1: true}, 2, 0)

	s.Equal([]model.FID{1}, s.fids(view.Items))
}

func (s *ServiceSuite) TestEmptyAllowListFallsBackToPublic() {
	// An allow-list with nobody on it is the same as no allow-list
	view := s.service.Page(s.players(1, 2, 3), 2, map[model.FID]bool{}, 2, 0)

	s.Equal([]model.FID{1, 3}, s.fids(view.Items))
	s.Equal(1, view.TotalPages)
}

func (s *ServiceSuite) TestCeilPagination() {
	view := s.service.Page(s.players(1, 2, 3, 4, 5, 6), 99, nil, 2, 2)

	s.Equal(3, view.TotalPages)
	s.Equal([]model.FID{5, 6}, s.fids(view.Items))
}

func (s *ServiceSuite) TestPartialLastPage() {
	view := s.service.Page(s.players(1, 2, 3), 99, nil, 2, 1)

	s.Equal(2, view.TotalPages)
	s.Equal([]model.FID{3}, s.fids(view.Items))
}

func (s *ServiceSuite) TestPageClampsHigh() {
	view := s.service.Page(s.players(1, 2, 3), 99, nil, 2, 50)

	s.Equal(1, view.Page)
	s.Equal([]model.FID{3}, s.fids(view.Items))
}

func (s *ServiceSuite) TestPageClampsNegative() {
	view := s.service.Page(s.players(1, 2, 3), 99, nil, 2, -5)

	s.Equal(0, view.Page)
	s.Equal([]model.FID{1, 2}, s.fids(view.Items))
}

func (s *ServiceSuite) TestEmptyRosterHasZeroPages() {
	view := s.service.Page(nil, 99, nil, 2, 0)

	s.Empty(view.Items)
	s.Equal(0, view.TotalPages)
	s.Equal(0, view.Page)
	s.Equal(0, view.PreviousPage)
	s.Equal(0, view.NextPage)
}

func (s *ServiceSuite) TestOnlyViewerMeansZeroPages() {
	// Filtering can empty the roster even when players exist
	view := s.service.Page(s.players(2), 2, nil, 2, 5)

	s.Empty(view.Items)
	s.Equal(0, view.TotalPages)
	s.Equal(0, view.Page)
}

func (s *ServiceSuite) TestNavigationIndicesClamp() {
	first := s.service.Page(s.players(1, 2, 3, 4, 5), 99, nil, 2, 0)
	s.Equal(0, first.PreviousPage)
	s.Equal(1, first.NextPage)

	last := s.service.Page(s.players(1, 2, 3, 4, 5), 99, nil, 2, 2)
	s.Equal(1, last.PreviousPage)
	s.Equal(2, last.NextPage)
}

func (s *ServiceSuite) TestConcatenatedPagesReproduceCandidates() {
	players := s.players(1, 2, 3, 4, 5, 6, 7)

	var collected []model.FID
	view := s.service.Page(players, 99, nil, 2, 0)
	for page := 0; page < view.TotalPages; page++ {
		v := s.service.Page(players, 99, nil, 2, page)
		collected = append(collected, s.fids(v.Items)...)
	}

	s.Equal([]model.FID{1, 2, 3, 4, 5, 6, 7}, collected)
}

func (s *ServiceSuite) TestSpriteShuffleDoesNotAffectSelection() {
	// Fisher-Yates over two sprites: j=0 swaps, j=1 leaves them alone
	s.random.QueueIntn(0, 1)
	swapped := s.service.Page(s.players(1, 2, 3), 99, nil, 2, 0)
	s.Equal([]string{"/game/house2.png", "/game/house1.png"}, swapped.Sprites)

	identity := s.service.Page(s.players(1, 2, 3), 99, nil, 2, 0)
	s.Equal([]string{"/game/house1.png", "/game/house2.png"}, identity.Sprites)

	// Same houses either way
	s.Equal(s.fids(swapped.Items), s.fids(identity.Items))
}

func (s *ServiceSuite) TestZeroPageSizeFallsBackToDefault() {
	view := s.service.Page(s.players(1, 2, 3), 99, nil, 0, 0)

	s.Len(view.Items, DefaultPageSize)
	s.Equal(2, view.TotalPages)
}
