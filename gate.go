package authgate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devlucky14/authgate/session"
)

// Gate is the single authentication checkpoint. It decides whether a request
// needs authentication, delegates identification to the configured strategy,
// and classifies the result. Construct one through [Builder.Build]; a Gate is
// immutable and safe for concurrent use after construction.
type Gate struct {
	config   Config
	strategy Strategy
	store    session.Store
	audit    *auditDispatcher
	metrics  *Metrics
}

// RequiresAuth reports whether path is subject to authentication. A nil or
// empty exclusion list means every path requires it. Exclusions ending in '*'
// match any path sharing the fixed prefix; all other entries match exactly
// after trailing-slash normalization.
func (g *Gate) RequiresAuth(path string) bool {
	if g == nil {
		return true
	}
	return requiresAuth(path, g.config.Gate.ExcludedPaths)
}

func requiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}

	normalized := normalizePath(path)
	for _, rule := range excluded {
		if rule == "" {
			continue
		}
		if strings.HasSuffix(rule, "*") {
			if strings.HasPrefix(normalized, rule[:len(rule)-1]) {
				return false
			}
			continue
		}
		if normalized == normalizePath(rule) {
			return false
		}
	}

	return true
}

func normalizePath(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// Authenticate runs the full decision for one request. It never panics on a
// misconfigured gate; missing wiring surfaces as OutcomeBackendFailure.
func (g *Gate) Authenticate(ctx context.Context, req Request) Result {
	if g == nil || g.strategy == nil {
		return Result{
			Outcome: OutcomeBackendFailure,
			Err:     ErrGateNotReady,
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// A nil request carries no credentials and no path; treat it like any
	// other request that fails to identify, same as DestroySession does.
	if req == nil {
		g.metrics.Inc(MetricAuthRejected)
		g.emit(ctx, AuditEvent{
			EventType: "auth.rejected",
			Error:     ErrUnauthenticated.Error(),
		})
		return Result{
			Outcome: OutcomeUnauthenticated,
			Err:     ErrUnauthenticated,
		}
	}

	path := req.Path()

	if !g.RequiresAuth(path) {
		g.metrics.Inc(MetricAuthSkipped)
		return Result{Outcome: OutcomeNoAuthRequired}
	}

	start := time.Now()
	principal, err := g.strategy.Identify(ctx, req)
	g.metrics.Observe(MetricIdentifyLatency, time.Since(start))

	switch {
	case err == nil && principal != nil:
		g.metrics.Inc(MetricAuthSuccess)
		g.emit(ctx, AuditEvent{
			EventType: "auth.success",
			UserID:    principal.ID,
			Path:      path,
			Success:   true,
		})
		return Result{
			Outcome:   OutcomeAuthenticated,
			Principal: principal,
		}

	case errors.Is(err, ErrUnauthenticated):
		g.metrics.Inc(MetricAuthRejected)
		g.emit(ctx, AuditEvent{
			EventType: "auth.rejected",
			Path:      path,
			Error:     err.Error(),
		})
		return Result{
			Outcome: OutcomeUnauthenticated,
			Err:     err,
		}

	default:
		if err == nil {
			err = fmt.Errorf("%w: strategy returned no principal", ErrBackendUnavailable)
		} else if !errors.Is(err, ErrBackendUnavailable) {
			err = fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		g.metrics.Inc(MetricAuthBackendFailure)
		g.emit(ctx, AuditEvent{
			EventType: "auth.backend_failure",
			Path:      path,
			Error:     err.Error(),
		})
		return Result{
			Outcome: OutcomeBackendFailure,
			Err:     err,
		}
	}
}

// CreateSession creates a session for userID through the configured store
// chain.
func (g *Gate) CreateSession(ctx context.Context, userID string) (*session.Session, error) {
	if g == nil || g.store == nil {
		return nil, ErrGateNotReady
	}

	s, err := g.store.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	g.metrics.Inc(MetricSessionCreated)
	g.emit(ctx, AuditEvent{
		EventType: "session.created",
		UserID:    userID,
		SessionID: s.SessionID,
		Success:   true,
	})

	return s, nil
}

// DestroySession removes the session named by the request's session cookie.
// It reports false when no cookie is present or no record existed.
func (g *Gate) DestroySession(ctx context.Context, req Request) (bool, error) {
	if g == nil || g.store == nil {
		return false, ErrGateNotReady
	}
	if req == nil {
		return false, nil
	}

	sid, ok := req.Cookie(g.config.Session.CookieName)
	if !ok || sid == "" {
		return false, nil
	}

	existed, err := g.store.Destroy(ctx, sid)
	if err != nil {
		return false, err
	}
	if existed {
		g.metrics.Inc(MetricSessionDestroyed)
		g.emit(ctx, AuditEvent{
			EventType: "session.destroyed",
			SessionID: sid,
			Path:      req.Path(),
			Success:   true,
		})
	}

	return existed, nil
}

// Sessions exposes the configured store chain for callers that manage session
// lifecycles outside the request path.
func (g *Gate) Sessions() session.Store {
	if g == nil {
		return nil
	}
	return g.store
}

// SessionCookieName returns the cookie name the gate reads session IDs from.
func (g *Gate) SessionCookieName() string {
	if g == nil {
		return defaultCookieName
	}
	return g.config.Session.CookieName
}

// MetricsSnapshot returns a point-in-time copy of all gate metrics.
func (g *Gate) MetricsSnapshot() MetricsSnapshot {
	if g == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

// AuditDropped returns how many audit events were discarded because the
// dispatch buffer was full.
func (g *Gate) AuditDropped() uint64 {
	if g == nil {
		return 0
	}
	return g.audit.Dropped()
}

// Close stops the audit dispatcher after draining buffered events. The gate
// remains usable for authentication; further audit events are dropped.
func (g *Gate) Close() {
	if g == nil {
		return
	}
	g.audit.Close()
}

func (g *Gate) emit(ctx context.Context, event AuditEvent) {
	if g.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if event.IP == "" {
		event.IP = clientIPFromContext(ctx)
	}
	g.audit.Emit(ctx, event)
}
