package posts_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/posts"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	byID map[uuid.UUID]*devconnect.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*devconnect.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, devconnect.NewRecordNotFound("user not found")
}

func (f *fakeUsers) GetByIdentifier(context.Context, string) (*devconnect.User, error) {
	return nil, devconnect.NewRecordNotFound("user not found")
}

func (f *fakeUsers) Create(_ context.Context, u *devconnect.User) (*devconnect.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type memPosts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]posts.Post
}

func (m *memPosts) Create(_ context.Context, p *posts.Post) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID] = *p
	return p, nil
}

func (m *memPosts) GetByID(_ context.Context, id uuid.UUID) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, devconnect.NewRecordNotFound("post not found")
	}
	return &p, nil
}

func (m *memPosts) List(context.Context) ([]*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*posts.Post{}
	for _, p := range m.byID {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memPosts) Update(_ context.Context, p *posts.Post) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return nil, devconnect.NewRecordNotFound("post not found")
	}
	m.byID[p.ID] = *p
	return p, nil
}

func (m *memPosts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return devconnect.NewRecordNotFound("post not found")
	}
	delete(m.byID, id)
	return nil
}

func (m *memPosts) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.byID {
		if p.UserID == userID {
			delete(m.byID, id)
		}
	}
	return nil
}

type fixture struct {
	service *posts.Service
	store   *memPosts
	alice   *devconnect.User
	bob     *devconnect.User
}

func newFixture() *fixture {
	alice := &devconnect.User{ID: uuid.New(), Name: "Alice", Avatar: "alice.png"}
	bob := &devconnect.User{ID: uuid.New(), Name: "Bob", Avatar: "bob.png"}
	users := &fakeUsers{byID: map[uuid.UUID]*devconnect.User{alice.ID: alice, bob.ID: bob}}
	store := &memPosts{byID: map[uuid.UUID]posts.Post{}}
	return &fixture{
		service: posts.NewService(store, users),
		store:   store,
		alice:   alice,
		bob:     bob,
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.alice.ID, posts.Input{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, "alice.png", post.Avatar)
	assert.Equal(t, f.alice.ID, post.UserID)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)

	_, err = f.service.Create(ctx, f.alice.ID, posts.Input{})
	assert.True(t, errors.IsValidation(err))

	_, err = f.service.Create(ctx, uuid.New(), posts.Input{Text: "ghost"})
	assert.ErrorIs(t, err, devconnect.ErrUserNotFound)
}

func TestService_ListNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Create(ctx, f.alice.ID, posts.Input{Text: "first"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := f.service.Create(ctx, f.bob.ID, posts.Input{Text: "second"})
	require.NoError(t, err)

	list, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestService_Get(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, posts.ErrPostNotFound)

	_, err = f.service.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.alice.ID, posts.Input{Text: "mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.Delete(ctx, f.bob.ID, post.ID.String()), posts.ErrNotAuthorized)
	require.NoError(t, f.service.Delete(ctx, f.alice.ID, post.ID.String()))

	_, err = f.service.Get(ctx, post.ID.String())
	assert.ErrorIs(t, err, posts.ErrPostNotFound)
}

func TestService_LikeUnlike(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.alice.ID, posts.Input{Text: "like me"})
	require.NoError(t, err)
	id := post.ID.String()

	likes, err := f.service.Like(ctx, f.bob.ID, id)
	require.NoError(t, err)
	assert.Equal(t, []posts.Like{{User: f.bob.ID}}, likes)

	_, err = f.service.Like(ctx, f.bob.ID, id)
	assert.ErrorIs(t, err, posts.ErrAlreadyLiked)

	_, err = f.service.Unlike(ctx, f.alice.ID, id)
	assert.ErrorIs(t, err, posts.ErrNotLiked)

	likes, err = f.service.Unlike(ctx, f.bob.ID, id)
	require.NoError(t, err)
	assert.Empty(t, likes)

	stored, err := f.service.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Likes)
}

func TestService_CommentUncomment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.service.Create(ctx, f.alice.ID, posts.Input{Text: "discuss"})
	require.NoError(t, err)
	id := post.ID.String()

	comments, err := f.service.Comment(ctx, f.bob.ID, id, posts.Input{Text: "nice"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, "bob.png", comments[0].Avatar)
	commentID := comments[0].ID.String()

	_, err = f.service.Comment(ctx, f.bob.ID, id, posts.Input{})
	assert.True(t, errors.IsValidation(err))

	_, err = f.service.Uncomment(ctx, f.alice.ID, id, commentID)
	assert.ErrorIs(t, err, posts.ErrNotAuthorized)

	_, err = f.service.Uncomment(ctx, f.bob.ID, id, "bogus")
	assert.ErrorIs(t, err, posts.ErrCommentNotFound)

	comments, err = f.service.Uncomment(ctx, f.bob.ID, id, commentID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
