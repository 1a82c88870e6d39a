package devconnect

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserFinder is a store we can use to retrieve users
type UserFinder interface {
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
}

// UserProvider handles users
type UserProvider struct {
	store  UserFinder
	hasher PasswordAuthenticator
	logger Logger
}

// Verify interface compliance
var _ IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserFinder, hasher PasswordAuthenticator) *UserProvider {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &UserProvider{
		store:  store,
		hasher: hasher,
		logger: defLogger{},
	}
}

// WithLogger sets the logger
func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity.
// Unknown identifiers and wrong passwords both return ErrMismatchedHashAndPassword.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, NormalizeEmail(identifier))
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		u.logger.Debug("password verification failed", "user_id", user.ID.String())
		return nil, ErrMismatchedHashAndPassword
	}

	return NewIdentityFromUser(user), nil
}
