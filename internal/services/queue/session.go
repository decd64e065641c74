package queue

import (
	"context"
	"log/slog"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/services/gesture"
	"github.com/jcaldw/trickortreth/internal/services/visit"
)

// State tracks whether a session can accept a new decision
type State string

const (
	// StateIdle means the session is ready for the next decision
	StateIdle State = "idle"
	// StatePending means a decision's store write is in flight; further
	// decisions are rejected until it resolves
	StatePending State = "pending"
)

// Manager builds visitor queue sessions for homeowners
type Manager struct {
	visits visit.ControllerInterface
	logger *slog.Logger
}

// NewManager creates a queue Manager
func NewManager(visits visit.ControllerInterface, logger *slog.Logger) *Manager {
	return &Manager{
		visits: visits,
		logger: logger.With(slog.String("component", "queue")),
	}
}

// Begin fetches the homeowner's undecided visits and returns a fresh
// session with the cursor at the first (newest) visit. A session is a
// snapshot: visits arriving afterwards are invisible until the caller
// begins a new session.
func (m *Manager) Begin(ctx context.Context, homeownerFID model.FID) (*Session, error) {
	items, err := m.visits.ListUndecided(ctx, homeownerFID)
	if err != nil {
		return nil, err
	}

	m.logger.Info("queue session started",
		slog.Int64("homeowner_fid", int64(homeownerFID)),
		slog.Int("visitors", len(items)))

	return &Session{
		homeownerFID: homeownerFID,
		items:        items,
		state:        StateIdle,
		visits:       m.visits,
	}, nil
}

// Session is one homeowner's pass over their undecided visitors, one card
// at a time. The cursor only moves forward, and only after a decision's
// store write has been confirmed.
//
// Not safe for concurrent use; a session models one user's swiping.
type Session struct {
	homeownerFID model.FID
	items        []*model.Visit
	cursor       int
	state        State
	visits       visit.ControllerInterface
}

// Current returns the visit under the cursor, or false when the queue is
// empty or exhausted
func (s *Session) Current() (*model.Visit, bool) {
	if s.cursor >= len(s.items) {
		return nil, false
	}
	return s.items[s.cursor], true
}

// Empty reports whether the session never had any visitors. Distinct
// from Exhausted so the caller can say "no visitors yet" vs "all caught
// up".
func (s *Session) Empty() bool {
	return len(s.items) == 0
}

// Exhausted reports whether every visitor in the session has been decided
func (s *Session) Exhausted() bool {
	return len(s.items) > 0 && s.cursor >= len(s.items)
}

// Size returns the number of visitors in the session
func (s *Session) Size() int {
	return len(s.items)
}

// Position returns the 0-based cursor position
func (s *Session) Position() int {
	return s.cursor
}

// State returns the session's decision state
func (s *Session) State() State {
	return s.state
}

// Decide applies a decision to the current visit. While the store write
// is in flight the session is Pending and rejects re-entrant decisions;
// on failure the cursor stays put and the session returns to Idle so the
// same card can be retried. The cursor advances only after the write is
// confirmed.
func (s *Session) Decide(ctx context.Context, accepted bool) (*model.Visit, error) {
	if s.state == StatePending {
		return nil, model.ErrDecisionPending
	}

	current, ok := s.Current()
	if !ok {
		return nil, model.ErrQueueExhausted
	}

	s.state = StatePending
	decided, err := s.visits.RecordDecision(ctx, current.ID, accepted)
	s.state = StateIdle
	if err != nil {
		return nil, err
	}

	s.cursor++
	return decided, nil
}

// Swipe resolves a gesture outcome against the current visit: a
// committed accept or decline becomes a decision, an uncommitted release
// is a no-op and returns nil without touching the queue.
func (s *Session) Swipe(ctx context.Context, outcome gesture.Outcome) (*model.Visit, error) {
	if !outcome.Committed() {
		return nil, nil
	}
	return s.Decide(ctx, outcome.Decision == gesture.DecisionAccept)
}
