package session

import (
	"context"
	"sync"
	"time"
)

// Store defines how sessions are created, resolved, and destroyed. All
// implementations share these semantics:
//
//   - Create inserts a complete record in one step; no partially created
//     session is ever visible.
//   - Lookup returns (nil, nil) for unknown IDs. Expired sessions are
//     indistinguishable from never-created ones.
//   - Destroy is idempotent: destroying an unknown or already-destroyed ID
//     returns false without error.
type Store interface {
	Create(ctx context.Context, userID string) (*Session, error)
	Lookup(ctx context.Context, sessionID string) (*Session, error)
	Destroy(ctx context.Context, sessionID string) (bool, error)
}

// MemoryStore is the in-process base store. Reads take the shared lock;
// create and destroy take the exclusive lock. Sessions are independent, so
// no cross-key coordination is needed.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create inserts a new record for userID and returns it. The returned
// record is a copy; mutating it does not affect the store.
func (m *MemoryStore) Create(_ context.Context, userID string) (*Session, error) {
	s := Session{
		SessionID: NewID(),
		UserID:    userID,
		CreatedAt: m.now().UTC().Unix(),
	}

	m.mu.Lock()
	m.sessions[s.SessionID] = s
	m.mu.Unlock()

	return &s, nil
}

// Lookup returns the record for sessionID, or (nil, nil) when absent.
func (m *MemoryStore) Lookup(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Destroy removes sessionID if present and reports whether a record existed.
func (m *MemoryStore) Destroy(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	_, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	return ok, nil
}

// Len returns the number of records currently held, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
