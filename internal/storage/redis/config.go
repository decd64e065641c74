package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Players and visits outlive a single session, so
	// both default to no expiry; the season is short-lived anyway and
	// operators can set a TTL to let a deployment clean itself up.
	PlayerTTL time.Duration
	VisitTTL  time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		PlayerTTL:    0,
		VisitTTL:     0,
	}
}
