package model

import "time"

// VisitID uniquely identifies a visit record. Assigned at creation time;
// opaque to callers.
type VisitID string

// MaxMessageLength is the longest one-liner a visitor may leave at a door.
const MaxMessageLength = 100

// Visit records one player leaving a message at another player's house.
//
// A visit has exactly two lifecycle states: created (Seen=false,
// Matched=false) and decided (Seen=true, Matched set by the homeowner's
// swipe). Decided is terminal. Matched can only become true in the same
// transition that sets Seen, so "matched but unseen" is unrepresentable
// through the lifecycle controller.
type Visit struct {
	ID           VisitID   `json:"id" db:"id"`
	VisitorFID   FID       `json:"visitor_fid" db:"visitor_fid"`
	HomeownerFID FID       `json:"homeowner_fid" db:"homeowner_fid"`
	Message      string    `json:"message" db:"message"`
	Matched      bool      `json:"matched" db:"matched"`
	Seen         bool      `json:"seen" db:"seen"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Decided reports whether the homeowner has already swiped on this visit.
func (v *Visit) Decided() bool {
	return v.Seen
}
