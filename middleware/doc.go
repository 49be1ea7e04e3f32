// Package middleware exposes an HTTP adapter that enforces authgate.Gate
// decisions on net/http handlers.
//
// # Guards
//
//   - [Guard] — runs Gate.Authenticate on every request and maps the outcome
//     to pass, 401, or 500.
//
// The guard injects the resolved principal into the request context; wrapped
// handlers read it back with [PrincipalFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Gate calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Gate.Authenticate.
//
// # What this package must NOT do
//
//   - Parse headers or cookies directly (the Gate's strategy owns that).
//   - Touch the session store or user repository.
//   - Make decisions beyond the four outcomes Gate.Authenticate reports.
package middleware
