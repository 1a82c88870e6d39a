package posts_test

import (
	"testing"

	"github.com/goliatone/go-devconnect/posts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_LikeUnlike(t *testing.T) {
	post := &posts.Post{ID: uuid.New()}
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, post.Like(alice))
	require.NoError(t, post.Like(bob))
	assert.Equal(t, []posts.Like{{User: bob}, {User: alice}}, post.Likes)

	assert.ErrorIs(t, post.Like(alice), posts.ErrAlreadyLiked)
	assert.Len(t, post.Likes, 2)

	require.NoError(t, post.Unlike(alice))
	assert.False(t, post.LikedBy(alice))
	assert.True(t, post.LikedBy(bob))

	assert.ErrorIs(t, post.Unlike(alice), posts.ErrNotLiked)
}

func TestPost_Comments(t *testing.T) {
	post := &posts.Post{ID: uuid.New()}
	alice, bob := uuid.New(), uuid.New()

	first := post.AddComment(posts.Comment{User: alice, Text: "first"})
	second := post.AddComment(posts.Comment{User: bob, Text: "second"})
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "second", post.Comments[0].Text)

	assert.ErrorIs(t, post.RemoveComment(first.ID, bob), posts.ErrNotAuthorized)
	assert.ErrorIs(t, post.RemoveComment(uuid.New(), alice), posts.ErrCommentNotFound)

	require.NoError(t, post.RemoveComment(first.ID, alice))
	require.Len(t, post.Comments, 1)
	assert.Equal(t, second.ID, post.Comments[0].ID)
}
