package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage"
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

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.FID), data, s.cfg.PlayerTTL)
	pipe.SAdd(ctx, playersIndexKey(), strconv.FormatInt(int64(player.FID), 10))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, fid model.FID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(fid)).Bytes()
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

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	fids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(fids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, 0, len(fids))
	for _, raw := range fids {
		fid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue // Skip invalid index entries
		}
		keys = append(keys, playerKey(model.FID(fid)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	sort.Slice(players, func(i, j int) bool {
		if !players[i].CreatedAt.Equal(players[j].CreatedAt) {
			return players[i].CreatedAt.After(players[j].CreatedAt)
		}
		return players[i].FID > players[j].FID
	})
	return players, nil
}

// Visit operations

func (s *Storage) SaveVisit(ctx context.Context, visit *model.Visit) error {
	data, err := json.Marshal(visit)
	if err != nil {
		return err
	}

	vKey := visitKey(visit.ID)
	indexKey := unseenVisitsIndexKey(visit.HomeownerFID)

	// Keep the homeowner's unseen index in sync with the visit's state:
	// undecided visits are members, decided visits are removed
	pipe := s.client.Pipeline()
	pipe.Set(ctx, vKey, data, s.cfg.VisitTTL)
	if visit.Seen {
		pipe.SRem(ctx, indexKey, vKey)
	} else {
		pipe.SAdd(ctx, indexKey, vKey)
		if s.cfg.VisitTTL > 0 {
			pipe.Expire(ctx, indexKey, s.cfg.VisitTTL) // Keep index TTL in sync
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetVisit(ctx context.Context, id model.VisitID) (*model.Visit, error) {
	data, err := s.client.Get(ctx, visitKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrVisitNotFound
		}
		return nil, err
	}

	var visit model.Visit
	if err := json.Unmarshal(data, &visit); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (s *Storage) ListUnseenVisits(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error) {
	indexKey := unseenVisitsIndexKey(homeownerFID)

	visitKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(visitKeys) == 0 {
		return []*model.Visit{}, nil
	}

	values, err := s.client.MGet(ctx, visitKeys...).Result()
	if err != nil {
		return nil, err
	}

	visits := make([]*model.Visit, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Visit may have expired
		}
		var visit model.Visit
		if err := json.Unmarshal([]byte(val.(string)), &visit); err != nil {
			continue // Skip invalid data
		}
		if visit.Seen {
			continue // Index may lag a concurrent decision
		}
		visits = append(visits, &visit)
	}

	sort.Slice(visits, func(i, j int) bool {
		if !visits[i].CreatedAt.Equal(visits[j].CreatedAt) {
			return visits[i].CreatedAt.After(visits[j].CreatedAt)
		}
		return visits[i].ID > visits[j].ID
	})
	return visits, nil
}
