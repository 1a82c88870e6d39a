package posts

import "github.com/goliatone/go-errors"

// ErrPostNotFound is returned for unknown or malformed post ids
var ErrPostNotFound = errors.New("Post not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("POST_NOT_FOUND")

// ErrCommentNotFound is returned for unknown comment ids
var ErrCommentNotFound = errors.New("Comment does not exist", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("COMMENT_NOT_FOUND")

// ErrNotAuthorized is returned when acting on another user's post or comment
var ErrNotAuthorized = errors.New("User not authorized", errors.CategoryAuthz).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("NOT_OWNER")

// ErrAlreadyLiked is returned when liking a post twice
var ErrAlreadyLiked = errors.New("Post already liked", errors.CategoryOperation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("ALREADY_LIKED")

// ErrNotLiked is returned when unliking a post that was never liked
var ErrNotLiked = errors.New("Post has not yet been liked", errors.CategoryOperation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("NOT_LIKED")
