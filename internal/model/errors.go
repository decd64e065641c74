package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Visit errors
	ErrVisitNotFound       = errors.New("visit not found")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrMessageTooLong      = errors.New("message exceeds maximum length")
	ErrVisitAlreadyDecided = errors.New("visit has already been decided")

	// Visitor queue errors
	ErrDecisionPending = errors.New("a decision is already in flight")
	ErrQueueExhausted  = errors.New("no visitor remaining in the queue")
)
