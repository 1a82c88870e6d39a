package repository

import (
	"context"

	"github.com/goliatone/go-devconnect/posts"
	bunrepo "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PostRepository implements posts.Repository on top of go-repository-bun.
type PostRepository struct {
	repo bunrepo.Repository[*posts.Post]
}

var _ posts.Repository = (*PostRepository)(nil)

// NewPostRepository creates a new repository.
func NewPostRepository(db *bun.DB) *PostRepository {
	return &PostRepository{
		repo: bunrepo.NewRepositoryWithConfig(db, bunrepo.ModelHandlers[*posts.Post]{
			NewRecord: func() *posts.Post {
				return &posts.Post{}
			},
			GetID: func(record *posts.Post) uuid.UUID {
				if record == nil {
					return uuid.Nil
				}
				return record.ID
			},
			SetID: func(record *posts.Post, id uuid.UUID) {
				if record != nil {
					record.ID = id
				}
			},
		}, nil),
	}
}

// Create implements posts.Repository.
func (r *PostRepository) Create(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	normalizePost(p)

	created, err := r.repo.Create(ctx, p)
	if err != nil {
		return nil, mapError(err, "")
	}
	return normalizePost(created), nil
}

// GetByID implements posts.Repository.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	p, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapError(err, "post not found")
	}
	return normalizePost(p), nil
}

// List implements posts.Repository.
func (r *PostRepository) List(ctx context.Context) ([]*posts.Post, error) {
	out, _, err := r.repo.List(ctx, newestFirst)
	if err != nil {
		return nil, mapError(err, "")
	}

	for _, p := range out {
		normalizePost(p)
	}
	if out == nil {
		out = []*posts.Post{}
	}
	return out, nil
}

// Update implements posts.Repository. Only likes, comments and text change
// after creation.
func (r *PostRepository) Update(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	normalizePost(p)

	updated, err := r.repo.Update(ctx, p, bunrepo.UpdateColumns("text", "likes", "comments"))
	if err != nil {
		return nil, mapError(err, "post not found")
	}
	return normalizePost(updated), nil
}

// Delete implements posts.Repository.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return mapError(r.repo.Delete(ctx, p), "")
}

// DeleteByUserID implements posts.Repository.
func (r *PostRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return mapError(r.repo.DeleteWhere(ctx, bunrepo.DeleteBy("user_id", "=", userID.String())), "")
}

func normalizePost(p *posts.Post) *posts.Post {
	if p.Likes == nil {
		p.Likes = []posts.Like{}
	}
	if p.Comments == nil {
		p.Comments = []posts.Comment{}
	}
	return p
}
