package middleware

import (
	"context"
	"net/http"

	authgate "github.com/devlucky14/authgate"
)

type principalContextKey struct{}

// PrincipalFromContext returns the principal injected by [Guard], if any.
func PrincipalFromContext(ctx context.Context) (*authgate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*authgate.Principal)
	return p, ok
}

// Guard returns middleware enforcing gate decisions: excluded paths pass
// through untouched, authenticated requests pass with the principal in
// context, rejections become 401, and backend faults become 500.
func Guard(gate *authgate.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil {
				http.Error(w, "service unavailable", http.StatusInternalServerError)
				return
			}

			ctx := authgate.WithClientIP(r.Context(), r.RemoteAddr)
			res := gate.Authenticate(ctx, authgate.NewHTTPRequest(r))

			switch res.Outcome {
			case authgate.OutcomeNoAuthRequired:
				next.ServeHTTP(w, r)
			case authgate.OutcomeAuthenticated:
				ctx = context.WithValue(ctx, principalContextKey{}, res.Principal)
				next.ServeHTTP(w, r.WithContext(ctx))
			case authgate.OutcomeUnauthenticated:
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				http.Error(w, "service unavailable", http.StatusInternalServerError)
			}
		})
	}
}
