package posts

import (
	"context"
	"time"

	"github.com/goliatone/go-devconnect"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Repository persists posts. Implementations live in the repository package.
type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// List returns every post, newest first
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// Service implements the post use cases
type Service struct {
	posts  Repository
	users  devconnect.Users
	logger devconnect.Logger
	now    func() time.Time
}

// NewService returns a post service
func NewService(posts Repository, users devconnect.Users) *Service {
	return &Service{
		posts:  posts,
		users:  users,
		logger: devconnect.DefaultLogger(),
		now:    time.Now,
	}
}

// WithLogger sets the logger
func (s *Service) WithLogger(l devconnect.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create publishes a post with the author's name and avatar
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in Input) (*Post, error) {
	if err := in.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid post payload")
	}

	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:       uuid.New(),
		UserID:   userID,
		Text:     in.Text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []Like{},
		Comments: []Comment{},
		Date:     s.now().UTC(),
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create post")
	}
	return created, nil
}

// List returns all posts, newest first
func (s *Service) List(ctx context.Context) ([]*Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list posts")
	}
	return posts, nil
}

// Get returns a single post
func (s *Service) Get(ctx context.Context, rawID string) (*Post, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load post")
	}
	return post, nil
}

// Delete removes a post owned by userID
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, rawID string) error {
	post, err := s.Get(ctx, rawID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotAuthorized
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil && !devconnect.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete post")
	}
	return nil
}

// Like adds the user's like and returns the likes
func (s *Service) Like(ctx context.Context, userID uuid.UUID, rawID string) ([]Like, error) {
	post, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if err := post.Like(userID); err != nil {
		return nil, err
	}

	if post, err = s.update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the user's like and returns the likes
func (s *Service) Unlike(ctx context.Context, userID uuid.UUID, rawID string) ([]Like, error) {
	post, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if err := post.Unlike(userID); err != nil {
		return nil, err
	}

	if post, err = s.update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Comment adds a comment and returns the post comments
func (s *Service) Comment(ctx context.Context, userID uuid.UUID, rawID string, in Input) ([]Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid comment payload")
	}

	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	post.AddComment(Comment{
		User:   userID,
		Text:   in.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   s.now().UTC(),
	})

	if post, err = s.update(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// Uncomment removes the user's comment and returns the post comments
func (s *Service) Uncomment(ctx context.Context, userID uuid.UUID, rawID, rawCommentID string) ([]Comment, error) {
	post, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	commentID, err := uuid.Parse(rawCommentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}

	if err := post.RemoveComment(commentID, userID); err != nil {
		return nil, err
	}

	if post, err = s.update(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *Service) update(ctx context.Context, post *Post) (*Post, error) {
	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			return nil, ErrPostNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update post")
	}
	return updated, nil
}

func (s *Service) author(ctx context.Context, userID uuid.UUID) (*devconnect.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			return nil, devconnect.ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}
	return user, nil
}
