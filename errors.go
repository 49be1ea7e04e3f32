package authgate

import "errors"

var (
	// ErrUnauthenticated is the single terminal failure returned to callers
	// when no valid principal could be established. Credential parsing,
	// lookup, and verification failures all collapse into this value so that
	// responses cannot be used as a user-enumeration oracle.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrBackendUnavailable marks an infrastructure fault (session
	// repository, user database) as opposed to a normal auth rejection.
	// Callers map it to a 500-class response.
	ErrBackendUnavailable = errors.New("auth backend unavailable")
	// ErrMalformedHeader is returned by the credential codec when the
	// authorization header does not match the configured scheme prefix.
	ErrMalformedHeader = errors.New("malformed authorization header")
	// ErrDecodeFailed is returned by the credential codec when the header
	// token is not valid base64 or does not decode to UTF-8 text.
	ErrDecodeFailed = errors.New("credential decode failed")
	// ErrMalformedCredentials is returned by the credential codec when the
	// decoded text carries no identifier/secret separator.
	ErrMalformedCredentials = errors.New("malformed credentials")
	// ErrUserNotFound is returned by UserProvider implementations when no
	// record matches. It is a normal miss, not a backend fault.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is an internal signal; store callers observe a nil
	// session, never this error.
	ErrSessionNotFound = errors.New("session not found")
	// ErrGateNotReady is returned when a Gate method is called on a zero or
	// half-built Gate.
	ErrGateNotReady = errors.New("gate not initialized")
	// ErrInvalidMode is returned by Build when Config.Mode names no known
	// strategy.
	ErrInvalidMode = errors.New("invalid authentication mode")
)
