// Package jwt wraps token issuance and verification for the stateless
// bearer-token strategy. Claims are deliberately minimal: the principal ID
// plus registered claims. Anything heavier belongs in a session, not a
// token.
//
// # What this package must NOT do
//
//   - Import authgate or session (no upward imports).
//   - Resolve principals; it verifies signatures and expiry only.
package jwt
