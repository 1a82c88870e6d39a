package devconnect

import (
	"context"

	"github.com/google/uuid"
)

// Users is the credential store. Implementations live in the repository
// package; every backend honors the same contract:
//   - GetByIdentifier matches the normalized email
//   - Create fails with a conflict error when the email is taken
//   - missing records are reported with NewRecordNotFound
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParseUserID parses the id carried by claims or route params
func ParseUserID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	return uid, nil
}
