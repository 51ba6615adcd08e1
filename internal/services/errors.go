package services

import "errors"

// Domain errors surfaced to handlers. Validation-style errors map to
// user-facing messages; anything else propagates as a storage failure.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrAmountExceedsBalance = errors.New("payment exceeds remaining balance")
	ErrDebtClosed           = errors.New("debt no longer accepts payments")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTimerRunning         = errors.New("a timer is already running")
	ErrTimerNotRunning      = errors.New("timer is not running")
)
