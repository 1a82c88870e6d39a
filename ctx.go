package devconnect

import (
	"context"

	"github.com/goliatone/go-router"
)

// DefaultContextKey is the request locals key the JWT middleware stores claims under
const DefaultContextKey = "user"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// ClaimsFromLocals extracts the AuthClaims stored by the JWT middleware
func ClaimsFromLocals(c router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// CurrentUserID returns the authenticated user id for a protected request.
// It checks the request locals first and falls back to the request context.
func CurrentUserID(c router.Context) (string, error) {
	if claims, ok := ClaimsFromLocals(c, ""); ok && claims.UserID() != "" {
		return claims.UserID(), nil
	}
	if claims, ok := GetClaims(c.Context()); ok && claims.UserID() != "" {
		return claims.UserID(), nil
	}
	return "", ErrNoToken
}
