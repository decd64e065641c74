package gesture

import (
	"math"
	"time"
)

// Decision is the discrete outcome of one drag interaction
type Decision string

const (
	// DecisionNone means the drag released without committing; the card
	// snaps back and nothing is recorded
	DecisionNone Decision = "none"
	// DecisionAccept is a rightward swipe ("TrETH")
	DecisionAccept Decision = "accept"
	// DecisionDecline is a leftward swipe ("Trick")
	DecisionDecline Decision = "decline"
)

const (
	// DefaultDistanceThreshold is how far (px) a drag must travel to commit
	DefaultDistanceThreshold = 80.0
	// DefaultVelocityThreshold is how fast (px/ms) a flick must move to
	// commit without travelling the full distance
	DefaultVelocityThreshold = 0.5
)

// Config holds the commit thresholds for the interpreter
type Config struct {
	DistanceThreshold float64
	VelocityThreshold float64
}

// DefaultConfig returns the calibrated thresholds
func DefaultConfig() Config {
	return Config{
		DistanceThreshold: DefaultDistanceThreshold,
		VelocityThreshold: DefaultVelocityThreshold,
	}
}

// Sample is one pointer position in time. Mouse and touch adapters both
// reduce to this, so there is a single copy of the threshold logic.
type Sample struct {
	X, Y float64
	Time time.Time
}

// Outcome is the result of ending a drag
type Outcome struct {
	Decision Decision
	// OffsetX/OffsetY are the total drag displacement at release
	OffsetX float64
	OffsetY float64
	// Velocity is |OffsetX| / elapsed ms at release
	Velocity float64
}

// Committed reports whether the gesture resolved to a decision
func (o Outcome) Committed() bool {
	return o.Decision != DecisionNone
}

// Interpreter converts a single drag interaction into a decision using a
// dual distance/velocity threshold: a slow deliberate drag past the
// distance threshold commits, and so does a fast flick that releases
// early. One interaction per interpreter lifecycle; it always returns to
// idle after End or Cancel.
//
// Not safe for concurrent use; an interpreter models one user's pointer.
type Interpreter struct {
	cfg      Config
	dragging bool
	start    Sample
	last     Sample
}

// New creates an Interpreter with the given thresholds. Non-positive
// thresholds fall back to the defaults.
func New(cfg Config) *Interpreter {
	if cfg.DistanceThreshold <= 0 {
		cfg.DistanceThreshold = DefaultDistanceThreshold
	}
	if cfg.VelocityThreshold <= 0 {
		cfg.VelocityThreshold = DefaultVelocityThreshold
	}
	return &Interpreter{cfg: cfg}
}

// Start begins a drag at the given sample. Starting while already
// dragging restarts the interaction from the new origin.
func (i *Interpreter) Start(s Sample) {
	i.dragging = true
	i.start = s
	i.last = s
}

// Move updates the drag with a new sample. Ignored when not dragging
// (stray move events happen when a press started outside the card).
func (i *Interpreter) Move(s Sample) {
	if !i.dragging {
		return
	}
	i.last = s
}

// Dragging reports whether an interaction is in progress
func (i *Interpreter) Dragging() bool {
	return i.dragging
}

// Offset returns the current drag displacement, for the visual layer to
// translate and rotate the card while the drag is live
func (i *Interpreter) Offset() (dx, dy float64) {
	if !i.dragging {
		return 0, 0
	}
	return i.last.X - i.start.X, i.last.Y - i.start.Y
}

// End releases the drag and resolves it to an Outcome. Ending without a
// preceding Start is a no-op returning DecisionNone; mouse-leave and
// touch-cancel can race other handlers and must never panic.
func (i *Interpreter) End() Outcome {
	if !i.dragging {
		return Outcome{Decision: DecisionNone}
	}

	dx := i.last.X - i.start.X
	dy := i.last.Y - i.start.Y
	elapsed := i.last.Time.Sub(i.start.Time).Milliseconds()
	if elapsed < 1 {
		elapsed = 1
	}
	velocity := math.Abs(dx) / float64(elapsed)

	i.reset()

	outcome := Outcome{
		Decision: DecisionNone,
		OffsetX:  dx,
		OffsetY:  dy,
		Velocity: velocity,
	}

	if math.Abs(dx) > i.cfg.DistanceThreshold || velocity > i.cfg.VelocityThreshold {
		if dx > 0 {
			outcome.Decision = DecisionAccept
		} else {
			outcome.Decision = DecisionDecline
		}
	}

	return outcome
}

// Cancel abandons the drag without emitting a decision. Identical to an
// uncommitted End as far as state goes; safe to call when idle.
func (i *Interpreter) Cancel() {
	i.reset()
}

func (i *Interpreter) reset() {
	i.dragging = false
	i.start = Sample{}
	i.last = Sample{}
}
