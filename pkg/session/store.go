package session

import "context"

// Store defines the interface for session lookup and lifecycle.
type Store interface {
	// Get returns the session for the user, creating one in the initial
	// state when none exists.
	Get(ctx context.Context, userID string) (*Session, error)

	// Clear removes the session for the user. Clearing an absent session
	// is a no-op.
	Clear(ctx context.Context, userID string) error

	// Len returns the number of resident sessions.
	Len(ctx context.Context) (int, error)
}
