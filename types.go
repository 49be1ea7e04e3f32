package authgate

import "context"

// Principal is the authenticated identity associated with a request. The
// record is owned by the external user repository; authgate reads it and
// never mutates the hash.
type Principal struct {
	ID           string
	Email        string
	PasswordHash string
}

// Credentials is the transient identifier/secret pair decoded from a
// transport header. It is never persisted and is discarded after one
// verification attempt.
type Credentials struct {
	Identifier string
	Secret     string
}

// UserProvider is the capability callers must implement to integrate
// authgate with their user database.
//
// GetUserByEmail returns ErrUserNotFound when no record matches; any other
// error is treated as a backend fault. Implementations must honor ctx
// cancellation on blocking lookups.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*Principal, error)
	GetUserByID(ctx context.Context, id string) (*Principal, error)
}

// PasswordVerifier compares a plaintext secret against a stored one-way
// hash. The default implementation is [password.Bcrypt]; the hash's salt and
// cost parameters are opaque to authgate.
type PasswordVerifier interface {
	Verify(password, encodedHash string) (bool, error)
}

// Request is the inbound-request view consumed by strategies: an
// arbitrary-case header lookup, a named-cookie lookup, and the request path.
// authgate never parses raw transport bytes itself.
type Request interface {
	Header(name string) string
	Cookie(name string) (string, bool)
	Path() string
}

// Strategy is the uniform contract every authentication method implements.
//
// Identify returns the principal that issued the request, ErrUnauthenticated
// when no valid principal could be established, or an ErrBackendUnavailable
// wrapped error on infrastructure faults.
type Strategy interface {
	Identify(ctx context.Context, req Request) (*Principal, error)
}

// Outcome classifies a gate decision.
type Outcome uint8

const (
	// OutcomeNoAuthRequired means the request path matched an exclusion rule
	// and no authentication was attempted.
	OutcomeNoAuthRequired Outcome = iota
	// OutcomeAuthenticated means the strategy resolved a principal.
	OutcomeAuthenticated
	// OutcomeUnauthenticated means the request must be rejected with a
	// 401-class response.
	OutcomeUnauthenticated
	// OutcomeBackendFailure means an infrastructure fault prevented a
	// decision; callers respond with a 500-class response.
	OutcomeBackendFailure
)

// Result is returned by [Gate.Authenticate]. Principal is non-nil only for
// OutcomeAuthenticated; Err carries the underlying sentinel for the two
// failure outcomes.
type Result struct {
	Outcome   Outcome
	Principal *Principal
	Err       error
}
