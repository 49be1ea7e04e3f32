package authgate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// BasicStrategy authenticates via an "Authorization: <scheme> <base64>"
// header carrying an identifier:secret pair.
//
// Every rejection collapses to ErrUnauthenticated so callers cannot tell a
// malformed header from an unknown user or a wrong password. The stage that
// failed is recorded on metrics and audit only.
type BasicStrategy struct {
	scheme   string
	provider UserProvider
	verifier PasswordVerifier

	metrics *Metrics
	audit   *auditDispatcher
}

// NewBasicStrategy builds a Basic strategy. An empty scheme defaults to
// "Basic".
func NewBasicStrategy(scheme string, provider UserProvider, verifier PasswordVerifier) *BasicStrategy {
	if scheme == "" {
		scheme = defaultScheme
	}
	return &BasicStrategy{
		scheme:   scheme,
		provider: provider,
		verifier: verifier,
	}
}

func (s *BasicStrategy) Identify(ctx context.Context, req Request) (*Principal, error) {
	header := req.Header("Authorization")
	if header == "" {
		s.reject(ctx, req, "header", "", MetricBasicMalformedHeader)
		return nil, ErrUnauthenticated
	}

	creds, err := decodeBasicHeader(s.scheme, header)
	if err != nil {
		stage, metric := classifyDecodeFailure(err)
		s.reject(ctx, req, stage, "", metric)
		return nil, ErrUnauthenticated
	}

	user, err := s.provider.GetUserByEmail(ctx, creds.Identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.reject(ctx, req, "lookup", creds.Identifier, MetricBasicUnknownUser)
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if user == nil {
		s.reject(ctx, req, "lookup", creds.Identifier, MetricBasicUnknownUser)
		return nil, ErrUnauthenticated
	}

	ok, err := s.verifier.Verify(creds.Secret, user.PasswordHash)
	if err != nil || !ok {
		s.reject(ctx, req, "verify", creds.Identifier, MetricBasicBadPassword)
		return nil, ErrUnauthenticated
	}

	return user, nil
}

func classifyDecodeFailure(err error) (string, MetricID) {
	switch {
	case errors.Is(err, ErrMalformedHeader):
		return "header", MetricBasicMalformedHeader
	case errors.Is(err, ErrDecodeFailed):
		return "decode", MetricBasicDecodeFailed
	default:
		return "credentials", MetricBasicMalformedCredentials
	}
}

func (s *BasicStrategy) reject(ctx context.Context, req Request, stage, email string, metric MetricID) {
	s.metrics.Inc(metric)

	if s.audit == nil {
		return
	}

	meta := map[string]string{"stage": stage}
	if email != "" {
		meta["email"] = email
	}
	s.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: "basic.reject",
		IP:        clientIPFromContext(ctx),
		Path:      req.Path(),
		Success:   false,
		Error:     ErrUnauthenticated.Error(),
		Metadata:  meta,
	})
}
