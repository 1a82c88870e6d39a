package profile

import "github.com/goliatone/go-errors"

// ErrNoProfile is returned when the current user has not created a profile
var ErrNoProfile = errors.New("There is no profile for this user", errors.CategoryNotFound).
	WithTextCode("PROFILE_MISSING")

// ErrProfileNotFound is returned when looking up another user's profile
var ErrProfileNotFound = errors.New("Profile not found", errors.CategoryNotFound).
	WithTextCode("PROFILE_NOT_FOUND")

// ErrNoGithubProfile is returned when GitHub has no repositories for a user
var ErrNoGithubProfile = errors.New("No Github profile found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("GITHUB_NOT_FOUND")
