// Package authgate decides, per request, whether a caller is identified and
// which principal issued the request. It provides a pluggable authentication
// strategy layer (HTTP Basic credentials, opaque session cookies, signed
// bearer tokens) behind one contract, a session lifecycle built from
// composable store decorators (in-memory, expiring, Redis-persistent), and a
// request-facing gate with path-exclusion rules.
//
// The package is designed for concurrent server workloads: Gate methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Gate], [Builder], [Config], the
// [Strategy] contract, and value types (Principal, Result, AuditEvent,
// MetricsSnapshot). Session persistence lives in the session subpackage,
// password hashing in password, token management in jwt, HTTP adaptation in
// middleware.
//
// # What this package must NOT do
//
//   - Own user records. [UserProvider] is a consumed capability; authgate
//     reads principals and never mutates them.
//   - Distinguish credential failures to callers. Every parsing, lookup, and
//     verification failure in the Basic flow collapses to
//     [ErrUnauthenticated]; only audit events carry the failing stage.
//   - Perform I/O outside of Gate and store methods (construction via Builder
//     is allocation-only until Build).
//
// # Performance contract
//
// Identify is the hot path. [BasicStrategy] performs at most one provider
// round-trip plus one hash comparison; [SessionStrategy] one store lookup
// plus one provider round-trip; [TokenStrategy] no I/O at all.
package authgate
