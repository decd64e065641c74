package redis

import (
	"fmt"

	"github.com/jcaldw/trickortreth/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "treth"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(fid model.FID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, fid)
}

// playersIndexKey returns the Redis key for the SET of all player fids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// visitKey returns the Redis key for a Visit
func visitKey(id model.VisitID) string {
	return fmt.Sprintf("%s:visit:%s", keyPrefix, id)
}

// unseenVisitsIndexKey returns the Redis key for the SET of a homeowner's
// undecided visit keys
func unseenVisitsIndexKey(homeownerFID model.FID) string {
	return fmt.Sprintf("%s:idx:unseen_visits:%d", keyPrefix, homeownerFID)
}
