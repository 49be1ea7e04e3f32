package authgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devlucky14/authgate/session"
)

// SessionStrategy authenticates via a session cookie resolved against a
// session store, then maps the stored user ID back to a principal.
type SessionStrategy struct {
	cookieName string
	store      session.Store
	provider   UserProvider

	metrics *Metrics
	audit   *auditDispatcher
}

// NewSessionStrategy builds a session strategy. An empty cookie name defaults
// to "_my_session_id".
func NewSessionStrategy(cookieName string, store session.Store, provider UserProvider) *SessionStrategy {
	if cookieName == "" {
		cookieName = defaultCookieName
	}
	return &SessionStrategy{
		cookieName: cookieName,
		store:      store,
		provider:   provider,
	}
}

func (s *SessionStrategy) Identify(ctx context.Context, req Request) (*Principal, error) {
	sid, ok := req.Cookie(s.cookieName)
	if !ok || sid == "" {
		s.reject(ctx, req, "cookie")
		return nil, ErrUnauthenticated
	}

	sess, err := s.store.Lookup(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if sess == nil {
		s.reject(ctx, req, "lookup")
		return nil, ErrUnauthenticated
	}

	user, err := s.provider.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.reject(ctx, req, "user")
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if user == nil {
		s.reject(ctx, req, "user")
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func (s *SessionStrategy) reject(ctx context.Context, req Request, stage string) {
	s.metrics.Inc(MetricSessionMiss)

	if s.audit == nil {
		return
	}

	s.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "session.reject",
		IP:        clientIPFromContext(ctx),
		Path:      req.Path(),
		Success:   false,
		Error:     ErrUnauthenticated.Error(),
		Metadata:  map[string]string{"stage": stage},
	})
}
