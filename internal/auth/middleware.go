package auth

import (
	"context"
	"net/http"
	"strings"

	"campus-canteen/internal/apperrors"
	"campus-canteen/internal/models"
)

// CookieName is the http-only cookie carrying the token
const CookieName = "token"

type contextKey int

const identityKey contextKey = 0

// ErrorWriter renders an error response; supplied by the server package so
// middleware failures use the same body shape as handler failures.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// IdentityFromContext returns the authenticated identity stored by Authenticate
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity. Exposed for tests.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// tokenFromRequest extracts the credential from the Authorization header,
// falling back to the auth cookie set at login.
func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticate verifies the request credential and stores the identity in
// the request context
func Authenticate(tokens *TokenService, writeError ErrorWriter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeError(w, r, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
			return
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
}

// RequireRole rejects authenticated callers whose role is not in the allow list
func RequireRole(writeError ErrorWriter, next http.HandlerFunc, allowed ...models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, apperrors.New(apperrors.KindUnauthenticated, "Authentication required"))
			return
		}

		if !Authorize(identity.Role, allowed...) {
			writeError(w, r, apperrors.New(apperrors.KindForbidden, "Insufficient permissions"))
			return
		}

		next(w, r)
	}
}
