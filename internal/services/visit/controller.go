package visit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jcaldw/trickortreth/internal/dependencies/clock"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/storage"
)

// Controller owns the visit lifecycle: a visit is created undecided and
// is decided exactly once by the homeowner's swipe.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new visit Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "visit")),
	}
}

// Create records a visitor knocking on a homeowner's door with a one-line
// message. The message is trimmed and must be 1..MaxMessageLength runes.
// Both fids must reference existing players; the store is the only thing
// that would otherwise notice a dangling fid, and it wouldn't.
func (c *Controller) Create(ctx context.Context, visitorFID, homeownerFID model.FID, message string) (*model.Visit, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, model.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > model.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}

	if _, err := c.storage.GetPlayer(ctx, visitorFID); err != nil {
		return nil, err
	}
	if _, err := c.storage.GetPlayer(ctx, homeownerFID); err != nil {
		return nil, err
	}

	visit := &model.Visit{
		ID:           model.VisitID(uuid.NewString()),
		VisitorFID:   visitorFID,
		HomeownerFID: homeownerFID,
		Message:      message,
		Matched:      false,
		Seen:         false,
		CreatedAt:    c.clock.Now(),
	}

	if err := c.storage.SaveVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("saving visit: %w", err)
	}

	c.logger.Info("visit created",
		slog.String("visit_id", string(visit.ID)),
		slog.Int64("visitor_fid", int64(visitorFID)),
		slog.Int64("homeowner_fid", int64(homeownerFID)))

	return visit, nil
}

// RecordDecision applies the homeowner's swipe to a visit: accepted sets
// Matched, and either way the visit becomes Seen. The transition is
// one-shot; deciding an already-decided visit fails with
// ErrVisitAlreadyDecided rather than silently flipping the outcome.
func (c *Controller) RecordDecision(ctx context.Context, id model.VisitID, accepted bool) (*model.Visit, error) {
	visit, err := c.storage.GetVisit(ctx, id)
	if err != nil {
		return nil, err
	}

	if visit.Decided() {
		return nil, model.ErrVisitAlreadyDecided
	}

	visit.Seen = true
	visit.Matched = accepted

	if err := c.storage.SaveVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("saving decision: %w", err)
	}

	c.logger.Info("visit decided",
		slog.String("visit_id", string(visit.ID)),
		slog.Bool("matched", accepted))

	return visit, nil
}

// ListUndecided returns the homeowner's unseen visits, newest first, so
// the freshest knock is the first card in the queue.
func (c *Controller) ListUndecided(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error) {
	return c.storage.ListUnseenVisits(ctx, homeownerFID)
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, visitorFID, homeownerFID model.FID, message string) (*model.Visit, error)
	RecordDecision(ctx context.Context, id model.VisitID, accepted bool) (*model.Visit, error)
	ListUndecided(ctx context.Context, homeownerFID model.FID) ([]*model.Visit, error)
}

var _ ControllerInterface = (*Controller)(nil)
