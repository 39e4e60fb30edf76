package trade

import "errors"

var (
	ErrOrderNotFound       = errors.New("trade: order not found")
	ErrOrderNumberRequired = errors.New("trade: order number is required")
	ErrUnknownMachine      = errors.New("trade: unknown state machine")
	// ErrTransitionGuard rejects a transition fired from a state outside
	// the edge's source set.
	ErrTransitionGuard = errors.New("trade: transition guard rejected")
)
