package session

import (
	"context"
	"time"
)

// PersistentStore mirrors a wrapped store into a durable [Repository] so
// sessions survive process restarts and can be resolved by other processes.
//
// Once persistence is enabled the durable layer is authoritative: Lookup and
// Destroy consult the repository, not the wrapped store, and expiry is
// recomputed from the durable record's CreatedAt. The wrapped store remains
// a best-effort fast path for single-process deployments and is kept in sync
// on create and destroy. No two-phase commit is attempted between the two
// layers; the repository wins on any conflict.
type PersistentStore struct {
	inner    Store
	repo     Repository
	duration time.Duration
	now      func() time.Time
}

// NewPersistentStore wraps inner with durable storage. duration is the same
// validity window the wrapped expiring layer uses; it bounds the repository
// TTL and the recomputed expiry on lookup. Non-positive means no expiry.
func NewPersistentStore(inner Store, repo Repository, duration time.Duration) *PersistentStore {
	return &PersistentStore{
		inner:    inner,
		repo:     repo,
		duration: duration,
		now:      time.Now,
	}
}

// Create creates through the wrapped store, then persists the same record.
// If the durable write fails the in-memory record is rolled back so no
// half-created session is visible anywhere.
func (p *PersistentStore) Create(ctx context.Context, userID string) (*Session, error) {
	s, err := p.inner.Create(ctx, userID)
	if err != nil || s == nil {
		return nil, err
	}

	var ttl time.Duration
	if p.duration > 0 {
		ttl = p.duration
	}

	if err := p.repo.Save(ctx, s, ttl); err != nil {
		_, _ = p.inner.Destroy(ctx, s.SessionID)
		return nil, err
	}

	return s, nil
}

// Lookup resolves sessionID from the repository and recomputes expiry from
// the durable CreatedAt. The wrapped store is bypassed: a process holding a
// stale in-memory record must not outvote the system of record.
func (p *PersistentStore) Lookup(ctx context.Context, sessionID string) (*Session, error) {
	s, err := p.repo.FindBySessionID(ctx, sessionID)
	if err != nil || s == nil {
		return nil, err
	}
	if expired(s.CreatedAt, p.duration, p.now().UTC()) {
		return nil, nil
	}
	return s, nil
}

// Destroy removes the durable record, reporting whether one existed. The
// in-memory record is removed best-effort either way; absence of a durable
// record means false even when a local record was still present.
func (p *PersistentStore) Destroy(ctx context.Context, sessionID string) (bool, error) {
	s, err := p.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if s == nil {
		_, _ = p.inner.Destroy(ctx, sessionID)
		return false, nil
	}

	if err := p.repo.Remove(ctx, s); err != nil {
		return false, err
	}
	_, _ = p.inner.Destroy(ctx, sessionID)

	return true, nil
}
