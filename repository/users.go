package repository

import (
	"context"

	"github.com/goliatone/go-devconnect"
	bunrepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRepository implements devconnect.Users on top of go-repository-bun.
type UserRepository struct {
	repo bunrepo.Repository[*devconnect.User]
}

var _ devconnect.Users = (*UserRepository)(nil)

// NewUserRepository creates a new repository.
func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{
		repo: bunrepo.NewRepositoryWithConfig(db, bunrepo.ModelHandlers[*devconnect.User]{
			NewRecord: func() *devconnect.User {
				return &devconnect.User{}
			},
			GetID: func(record *devconnect.User) uuid.UUID {
				if record == nil {
					return uuid.Nil
				}
				return record.ID
			},
			SetID: func(record *devconnect.User, id uuid.UUID) {
				if record != nil {
					record.ID = id
				}
			},
			GetIdentifier: func() string {
				return "email"
			},
			GetIdentifierValue: func(record *devconnect.User) string {
				if record == nil {
					return ""
				}
				return record.Email
			},
		}, nil),
	}
}

// GetByID implements devconnect.Users.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*devconnect.User, error) {
	user, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapError(err, "user not found")
	}
	return user, nil
}

// GetByIdentifier implements devconnect.Users. The identifier is an email.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*devconnect.User, error) {
	user, err := r.repo.GetByIdentifier(ctx, devconnect.NormalizeEmail(identifier))
	if err != nil {
		return nil, mapError(err, "user not found")
	}
	return user, nil
}

// Create implements devconnect.Users.
func (r *UserRepository) Create(ctx context.Context, record *devconnect.User) (*devconnect.User, error) {
	record.Email = devconnect.NormalizeEmail(record.Email)

	user, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapError(err, "")
	}
	return user, nil
}

// Delete implements devconnect.Users.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return mapError(r.repo.Delete(ctx, user), "")
}
