package authgate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devlucky14/authgate/jwt"
)

const bearerPrefix = "Bearer "

// TokenStrategy authenticates via an "Authorization: Bearer <jwt>" header.
// Signature, expiry, and issuer checks happen inside [jwt.Manager]; this
// strategy only maps the verified subject back to a principal.
type TokenStrategy struct {
	manager  *jwt.Manager
	provider UserProvider

	metrics *Metrics
	audit   *auditDispatcher
}

// NewTokenStrategy builds a bearer-token strategy.
func NewTokenStrategy(manager *jwt.Manager, provider UserProvider) *TokenStrategy {
	return &TokenStrategy{
		manager:  manager,
		provider: provider,
	}
}

func (s *TokenStrategy) Identify(ctx context.Context, req Request) (*Principal, error) {
	raw := bearerToken(req.Header("Authorization"))
	if raw == "" {
		s.reject(ctx, req, "header")
		return nil, ErrUnauthenticated
	}

	claims, err := s.manager.Validate(raw)
	if err != nil {
		s.reject(ctx, req, "verify")
		return nil, ErrUnauthenticated
	}

	user, err := s.provider.GetUserByID(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.reject(ctx, req, "subject")
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if user == nil {
		s.reject(ctx, req, "subject")
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func (s *TokenStrategy) reject(ctx context.Context, req Request, stage string) {
	s.metrics.Inc(MetricTokenInvalid)

	if s.audit == nil {
		return
	}

	s.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "token.reject",
		IP:        clientIPFromContext(ctx),
		Path:      req.Path(),
		Success:   false,
		Error:     ErrUnauthenticated.Error(),
		Metadata:  map[string]string{"stage": stage},
	})
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
