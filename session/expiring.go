package session

import (
	"context"
	"time"
)

// ExpiringStore decorates a base store with a fixed validity duration.
// Create and Destroy delegate unchanged; Lookup recomputes validity from the
// record's CreatedAt on every call. A lookup past expiry returns (nil, nil)
// without destroying the record — the underlying entry may linger until
// reaped or explicitly destroyed.
type ExpiringStore struct {
	inner Store
	// duration <= 0 disables expiry entirely, the escape hatch for
	// long-lived sessions.
	duration time.Duration
	now      func() time.Time
}

// NewExpiringStore wraps inner with the given validity duration.
func NewExpiringStore(inner Store, duration time.Duration) *ExpiringStore {
	return &ExpiringStore{
		inner:    inner,
		duration: duration,
		now:      time.Now,
	}
}

// Create delegates to the wrapped store.
func (e *ExpiringStore) Create(ctx context.Context, userID string) (*Session, error) {
	return e.inner.Create(ctx, userID)
}

// Lookup returns the record only while it is inside its validity window.
func (e *ExpiringStore) Lookup(ctx context.Context, sessionID string) (*Session, error) {
	s, err := e.inner.Lookup(ctx, sessionID)
	if err != nil || s == nil {
		return nil, err
	}
	if expired(s.CreatedAt, e.duration, e.now().UTC()) {
		return nil, nil
	}
	return s, nil
}

// Destroy delegates to the wrapped store.
func (e *ExpiringStore) Destroy(ctx context.Context, sessionID string) (bool, error) {
	return e.inner.Destroy(ctx, sessionID)
}
