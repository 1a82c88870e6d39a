package profile

import (
	"context"
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/provider/github"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Repository persists profiles. Implementations live in the repository package.
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Save inserts or replaces the profile owned by p.UserID
	Save(ctx context.Context, p *Profile) (*Profile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// PostRemover deletes every post authored by a user
type PostRemover interface {
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// RepoLister lists a GitHub user's repositories
type RepoLister interface {
	UserRepos(ctx context.Context, username string) ([]github.Repo, error)
}

// Service implements the profile use cases
type Service struct {
	profiles Repository
	users    devconnect.Users
	posts    PostRemover
	github   RepoLister
	logger   devconnect.Logger
	now      func() time.Time
}

// NewService returns a profile service. posts and gh may be nil.
func NewService(profiles Repository, users devconnect.Users, posts PostRemover, gh RepoLister) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		posts:    posts,
		github:   gh,
		logger:   devconnect.DefaultLogger(),
		now:      time.Now,
	}
}

// WithLogger sets the logger
func (s *Service) WithLogger(l devconnect.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Me returns the profile of the authenticated user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.own(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, p)
}

// Upsert creates the user's profile or updates the provided fields
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in Input) (*Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid profile payload")
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
	case devconnect.IsRecordNotFound(err):
		p = New(userID, s.now().UTC())
	default:
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}

	p.Apply(in)

	return s.save(ctx, p)
}

// List returns every profile with its user populated
func (s *Service) List(ctx context.Context) ([]*Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list profiles")
	}

	cache := map[uuid.UUID]*devconnect.UserSummary{}
	for _, p := range profiles {
		if summary, ok := cache[p.UserID]; ok {
			p.User = summary
			continue
		}
		if _, err := s.populate(ctx, p); err != nil {
			return nil, err
		}
		cache[p.UserID] = p.User
	}
	return profiles, nil
}

// ByUserID returns the profile of the given user. Malformed ids are
// reported the same way as missing profiles.
func (s *Service) ByUserID(ctx context.Context, rawID string) (*Profile, error) {
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}
	return s.populate(ctx, p)
}

// DeleteAccount removes the user's posts, profile and user record in that
// order. Steps are not atomic: a failure leaves later records in place.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if s.posts != nil {
		if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user posts")
		}
	}

	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !devconnect.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete profile")
	}

	if err := s.users.Delete(ctx, userID); err != nil && !devconnect.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	s.logger.Info("account deleted", "user_id", userID.String())
	return nil
}

// AddExperience validates and prepends an experience entry
func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (*Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid experience payload")
	}

	exp, err := in.Experience()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid experience dates")
	}

	p, err := s.own(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(exp)
	return s.save(ctx, p)
}

// RemoveExperience drops an experience entry by id
func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, rawID string) (*Profile, error) {
	p, err := s.own(ctx, userID)
	if err != nil {
		return nil, err
	}

	if id, err := uuid.Parse(rawID); err == nil && p.RemoveExperience(id) {
		return s.save(ctx, p)
	}
	return s.populate(ctx, p)
}

// AddEducation validates and prepends an education entry
func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (*Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, goerrors.FromOzzoValidation(err, "invalid education payload")
	}

	edu, err := in.Education()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid education dates")
	}

	p, err := s.own(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(edu)
	return s.save(ctx, p)
}

// RemoveEducation drops an education entry by id
func (s *Service) RemoveEducation(ctx context.Context, userID uuid.UUID, rawID string) (*Profile, error) {
	p, err := s.own(ctx, userID)
	if err != nil {
		return nil, err
	}

	if id, err := uuid.Parse(rawID); err == nil && p.RemoveEducation(id) {
		return s.save(ctx, p)
	}
	return s.populate(ctx, p)
}

// GithubRepos lists the repositories of a GitHub user
func (s *Service) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	if s.github == nil {
		return nil, ErrNoGithubProfile
	}

	repos, err := s.github.UserRepos(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrNoGithubProfile
		}
		return nil, err
	}
	return repos, nil
}

func (s *Service) own(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			return nil, ErrNoProfile
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile")
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, p *Profile) (*Profile, error) {
	saved, err := s.profiles.Save(ctx, p)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save profile")
	}
	return s.populate(ctx, saved)
}

func (s *Service) populate(ctx context.Context, p *Profile) (*Profile, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		if devconnect.IsRecordNotFound(err) {
			p.User = nil
			return p, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load profile user")
	}
	p.User = user.Summary()
	return p, nil
}
