package response

import (
	"time"

	"github.com/jcaldw/trickortreth/internal/model"
)

// Player represents a player in API responses
type Player struct {
	FID           int64     `json:"fid"`
	WalletAddress string    `json:"wallet_address"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		FID:           int64(p.FID),
		WalletAddress: p.WalletAddress,
		DisplayName:   p.DisplayName,
		AvatarURL:     p.AvatarURL,
		CreatedAt:     p.CreatedAt,
	}
}

// PlayerList wraps a list of players
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModel converts a slice of model players
func PlayerListFromModel(players []*model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Players: out}
}

// Visit represents a visit in API responses
type Visit struct {
	ID           string    `json:"id"`
	VisitorFID   int64     `json:"visitor_fid"`
	HomeownerFID int64     `json:"homeowner_fid"`
	Message      string    `json:"message"`
	Matched      bool      `json:"matched"`
	Seen         bool      `json:"seen"`
	CreatedAt    time.Time `json:"created_at"`
}

// VisitFromModel converts a model.Visit to a response Visit
func VisitFromModel(v *model.Visit) Visit {
	return Visit{
		ID:           string(v.ID),
		VisitorFID:   int64(v.VisitorFID),
		HomeownerFID: int64(v.HomeownerFID),
		Message:      v.Message,
		Matched:      v.Matched,
		Seen:         v.Seen,
		CreatedAt:    v.CreatedAt,
	}
}

// VisitList wraps a list of visits
type VisitList struct {
	Visits []Visit `json:"visits"`
}

// VisitListFromModel converts a slice of model visits
func VisitListFromModel(visits []*model.Visit) VisitList {
	out := make([]Visit, len(visits))
	for i, v := range visits {
		out[i] = VisitFromModel(v)
	}
	return VisitList{Visits: out}
}
