package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.FID]*model.Player
	visits  map[model.VisitID]*model.Visit
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.FID]*model.Player),
		visits:  make(map[model.VisitID]*model.Visit),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[p.FID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, fid model.FID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[fid]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	sortPlayersNewestFirst(players)
	return players, nil
}

// Visit operations

func (s *Storage) SaveVisit(ctx context.Context, visit *model.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *visit
	s.visits[v.ID] = &v
	return nil
}

func (s *Storage) GetVisit(ctx context.Context, id model.VisitID) (*model.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visit, ok := s.visits[id]
	if !ok {
		return nil, model.ErrVisitNotFound
	}
	v := *visit
	return &v, nil
}

func (s *Storage) ListUnseenVisits(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visits := make([]*model.Visit, 0)
	for _, visit := range s.visits {
		if visit.HomeownerFID == homeownerFID && !visit.Seen {
			v := *visit
			visits = append(visits, &v)
		}
	}
	sortVisitsNewestFirst(visits)
	return visits, nil
}

// sortVisitsNewestFirst orders visits by CreatedAt descending, breaking
// ties by ID so the order is stable across fetches
func sortVisitsNewestFirst(visits []*model.Visit) {
	sort.Slice(visits, func(i, j int) bool {
		if !visits[i].CreatedAt.Equal(visits[j].CreatedAt) {
			return visits[i].CreatedAt.After(visits[j].CreatedAt)
		}
		return visits[i].ID > visits[j].ID
	})
}

func sortPlayersNewestFirst(players []*model.Player) {
	sort.Slice(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.After(players[j].CreatedAt)
		}
		return players[i].FID > players[j].FID
	})
}
