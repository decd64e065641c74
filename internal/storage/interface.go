package storage

import (
	"context"

	"github.com/jcaldw/trickortreth/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, fid model.FID) (*model.Player, error)
	// ListPlayers returns every player, newest first
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Visit operations
	SaveVisit(ctx context.Context, visit *model.Visit) error
	GetVisit(ctx context.Context, id model.VisitID) (*model.Visit, error)
	// ListUnseenVisits returns the homeowner's undecided visits, newest first
	ListUnseenVisits(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error)
}
