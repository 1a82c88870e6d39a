package repository

import (
	"context"

	"github.com/goliatone/go-devconnect/profile"
	bunrepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProfileRepository implements profile.Repository on top of go-repository-bun.
type ProfileRepository struct {
	repo bunrepo.Repository[*profile.Profile]
}

var _ profile.Repository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new repository.
func NewProfileRepository(db *bun.DB) *ProfileRepository {
	return &ProfileRepository{
		repo: bunrepo.NewRepositoryWithConfig(db, bunrepo.ModelHandlers[*profile.Profile]{
			NewRecord: func() *profile.Profile {
				return &profile.Profile{}
			},
			GetID: func(record *profile.Profile) uuid.UUID {
				if record == nil {
					return uuid.Nil
				}
				return record.ID
			},
			SetID: func(record *profile.Profile, id uuid.UUID) {
				if record != nil {
					record.ID = id
				}
			},
		}, nil),
	}
}

// GetByUserID implements profile.Repository.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := r.repo.Get(ctx, bunrepo.SelectBy("user_id", "=", userID.String()))
	if err != nil {
		return nil, mapError(err, "profile not found")
	}
	return normalizeProfile(p), nil
}

// List implements profile.Repository.
func (r *ProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	profiles, _, err := r.repo.List(ctx, newestFirst)
	if err != nil {
		return nil, mapError(err, "")
	}

	for _, p := range profiles {
		normalizeProfile(p)
	}
	if profiles == nil {
		profiles = []*profile.Profile{}
	}
	return profiles, nil
}

// Save implements profile.Repository. A second save for the same user
// overwrites the editable columns.
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	normalizeProfile(p)

	saved, err := r.repo.Create(ctx, p,
		bunrepo.InsertOnConflictUpdate("user_id"),
		func(q *bun.InsertQuery) *bun.InsertQuery {
			return q.
				Set("company = EXCLUDED.company").
				Set("website = EXCLUDED.website").
				Set("location = EXCLUDED.location").
				Set("status = EXCLUDED.status").
				Set("skills = EXCLUDED.skills").
				Set("bio = EXCLUDED.bio").
				Set("githubusername = EXCLUDED.githubusername").
				Set("social = EXCLUDED.social").
				Set("experience = EXCLUDED.experience").
				Set("education = EXCLUDED.education")
		},
	)
	if err != nil {
		return nil, mapError(err, "")
	}
	return normalizeProfile(saved), nil
}

// DeleteByUserID implements profile.Repository.
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return mapError(r.repo.DeleteWhere(ctx, bunrepo.DeleteBy("user_id", "=", userID.String())), "")
}

// newestFirst orders profiles and posts by creation date.
func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.date DESC")
}

// normalizeProfile keeps list fields non nil so they encode as [] and not null.
func normalizeProfile(p *profile.Profile) *profile.Profile {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}
	return p
}
