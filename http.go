package devconnect

import (
	"context"

	"github.com/goliatone/go-devconnect/middleware/jwtware"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator builds the middleware guarding private routes
type RouteAuthenticator struct {
	validator  TokenValidator
	cfg        Config
	users      Users
	logger     Logger
	contextKey string
}

// NewRouteAuthenticator returns a RouteAuthenticator
func NewRouteAuthenticator(validator TokenValidator, cfg Config) *RouteAuthenticator {
	key := cfg.GetContextKey()
	if key == "" {
		key = DefaultContextKey
	}
	return &RouteAuthenticator{
		validator:  validator,
		cfg:        cfg,
		logger:     defLogger{},
		contextKey: key,
	}
}

// WithLogger sets the logger
func (a *RouteAuthenticator) WithLogger(l Logger) *RouteAuthenticator {
	if l != nil {
		a.logger = l
	}
	return a
}

// WithUserCheck makes the middleware reject tokens whose user no longer exists
func (a *RouteAuthenticator) WithUserCheck(users Users) *RouteAuthenticator {
	a.users = users
	return a
}

// ContextKey is the locals key claims are stored under
func (a *RouteAuthenticator) ContextKey() string {
	return a.contextKey
}

// ProtectedRoute returns the middleware for private routes. Failures are
// returned as errors so the app error handler renders them.
func (a *RouteAuthenticator) ProtectedRoute() router.MiddlewareFunc {
	var listeners []jwtware.ValidationListener
	if a.users != nil {
		listeners = append(listeners, a.ensureUserExists)
	}

	return jwtware.New(jwtware.Config{
		ContextKey:          a.contextKey,
		TokenLookup:         a.cfg.GetTokenLookup(),
		AuthScheme:          a.cfg.GetAuthScheme(),
		TokenValidator:      validatorAdapter{a.validator},
		ValidationListeners: listeners,
		ContextEnricher: func(ctx context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(ctx, ac)
			}
			return ctx
		},
		ErrorHandler: a.authErrHandler,
	})
}

func (a *RouteAuthenticator) ensureUserExists(c router.Context, claims jwtware.AuthClaims) error {
	id, err := ParseUserID(claims.UserID())
	if err != nil {
		return ErrTokenInvalid
	}

	if _, err := a.users.GetByID(c.Context(), id); err != nil {
		if IsRecordNotFound(err) {
			a.logger.Debug("token references missing user", "user_id", claims.UserID())
			return ErrTokenInvalid
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to verify token user")
	}
	return nil
}

func (a *RouteAuthenticator) authErrHandler(c router.Context, err error) error {
	switch {
	case goerrors.Is(err, jwtware.ErrJWTMissing):
		return ErrNoToken
	case goerrors.Is(err, jwtware.ErrJWTMissingOrMalformed):
		return ErrTokenMalformed
	}

	if goerrors.IsInternal(err) {
		return err
	}

	switch {
	case IsTokenExpiredError(err):
		a.logger.Debug("expired token", "path", c.Path())
		return ErrTokenExpired
	case IsMalformedError(err):
		a.logger.Debug("malformed token", "path", c.Path(), "error", err)
		return ErrTokenMalformed
	}

	a.logger.Debug("rejected token", "path", c.Path(), "error", err)
	return ErrTokenInvalid
}

type validatorAdapter struct {
	v TokenValidator
}

func (va validatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := va.v.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
