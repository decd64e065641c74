package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcaldw/trickortreth/internal/dependencies/clock"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage"
)

// Service owns player registration. Players are keyed by fid and
// upserted: the first write creates the row, later writes refresh the
// mutable profile fields without disturbing CreatedAt.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a player Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "player")),
	}
}

// Upsert creates or updates the player with the given fid. Empty fields
// on an update leave the stored value alone, so an avatar refresh does
// not wipe the wallet address.
func (s *Service) Upsert(ctx context.Context, fid model.FID, walletAddress, displayName, avatarURL string) (*model.Player, error) {
	existing, err := s.storage.GetPlayer(ctx, fid)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		FID:           fid,
		WalletAddress: walletAddress,
		DisplayName:   displayName,
		AvatarURL:     avatarURL,
	}

	if existing == nil {
		player.CreatedAt = s.clock.Now()
	} else {
		player.CreatedAt = existing.CreatedAt
		if player.WalletAddress == "" {
			player.WalletAddress = existing.WalletAddress
		}
		if player.DisplayName == "" {
			player.DisplayName = existing.DisplayName
		}
		if player.AvatarURL == "" {
			player.AvatarURL = existing.AvatarURL
		}
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("saving player: %w", err)
	}

	s.logger.Info("player upserted",
		slog.Int64("fid", int64(fid)),
		slog.Bool("created", existing == nil))

	return player, nil
}

// Get fetches a single player by fid
func (s *Service) Get(ctx context.Context, fid model.FID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, fid)
}

// List returns all registered players, newest first
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Interface for dependency injection
type ServiceInterface interface {
	Upsert(ctx context.Context, fid model.FID, walletAddress, displayName, avatarURL string) (*model.Player, error)
	Get(ctx context.Context, fid model.FID) (*model.Player, error)
	List(ctx context.Context) ([]*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
