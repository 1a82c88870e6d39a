package devconnect

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
)

// Auther logs users in and issues their session tokens
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, tokenService TokenService) *Auther {
	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

// WithLogger sets the logger
func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and returns a signed token. Every
// credential failure is reported as ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) || IsRecordNotFound(err) {
			s.logger.Debug("Login rejected credentials", "identifier", identifier)
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login verify identity error", "error", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(identity)
}

// IssueToken signs a token for an already verified identity
func (s *Auther) IssueToken(identity Identity) (string, error) {
	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("IssueToken failed to sign token", "error", err)
		return "", err
	}
	return token, nil
}
