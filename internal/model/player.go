package model

import "time"

// FID is the externally assigned numeric identity of a player
// (the Farcaster id of the connected account). It is never generated
// by this service.
type FID int64

// Player represents a participant in the neighborhood.
// A player record is created the first time they upload an avatar;
// afterwards only AvatarURL changes.
type Player struct {
	FID           FID       `json:"fid" db:"fid"`
	WalletAddress string    `json:"wallet_address" db:"wallet_address"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	AvatarURL     string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
