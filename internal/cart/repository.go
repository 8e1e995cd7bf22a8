package cart

import "context"

// Repository stores cart snapshots per session.
type Repository interface {
	// Get returns nil, nil when the session has no cart.
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, sessionID string, s Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}
