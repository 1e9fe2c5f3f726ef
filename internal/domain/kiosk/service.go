package kiosk

import "context"

// KioskService resolves keypad input into a check-in or check-out.
type KioskService interface {
	// Check parses the typed code, resolves the identity within the
	// branch, and toggles: an open session is closed, otherwise a new
	// one is opened. A refresh event is broadcast to kiosk subscribers
	// on success.
	Check(ctx context.Context, req CheckRequest) (CheckFeedback, error)

	VerifyPIN(ctx context.Context, req VerifyPINRequest) error
	UpdatePIN(ctx context.Context, req UpdatePINRequest) error
}
