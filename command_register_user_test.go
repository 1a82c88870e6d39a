package devconnect_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserHandler_Execute(t *testing.T) {
	users := newMemUsers()
	handler := devconnect.NewRegisterUserHandler(users, cheapHasher)

	user, err := handler.Execute(context.Background(), devconnect.RegisterUserMessage{
		Name:     "Ada",
		Email:    " Ada@Example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, devconnect.GravatarURL("ada@example.com"), user.Avatar)
	assert.NotEqual(t, "123456", user.PasswordHash)
	assert.NoError(t, cheapHasher.ComparePasswordAndHash("123456", user.PasswordHash))
	require.NotNil(t, user.CreatedAt)
	assert.Equal(t, 1, users.count())
}

func TestRegisterUserHandler_Duplicate(t *testing.T) {
	users := newMemUsers()
	handler := devconnect.NewRegisterUserHandler(users, cheapHasher)
	msg := devconnect.RegisterUserMessage{Name: "Ada", Email: "ada@example.com", Password: "123456"}

	_, err := handler.Execute(context.Background(), msg)
	require.NoError(t, err)

	msg.Email = "ADA@example.com"
	_, err = handler.Execute(context.Background(), msg)
	assert.ErrorIs(t, err, devconnect.ErrUserExists)
	assert.Equal(t, 1, users.count())
}

func TestRegisterUserHandler_Validation(t *testing.T) {
	handler := devconnect.NewRegisterUserHandler(newMemUsers(), cheapHasher)

	tests := []struct {
		name  string
		msg   devconnect.RegisterUserMessage
		field string
	}{
		{"missing name", devconnect.RegisterUserMessage{Email: "a@b.co", Password: "123456"}, "name"},
		{"bad email", devconnect.RegisterUserMessage{Name: "A", Email: "nope", Password: "123456"}, "email"},
		{"short password", devconnect.RegisterUserMessage{Name: "A", Email: "a@b.co", Password: "123"}, "password"},
		{"password over bcrypt limit", devconnect.RegisterUserMessage{Name: "A", Email: "a@b.co", Password: strings.Repeat("a", 73)}, "password"},
		{"multibyte password over bcrypt limit", devconnect.RegisterUserMessage{Name: "A", Email: "a@b.co", Password: strings.Repeat("é", 40)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(context.Background(), tt.msg)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))

			var rich *errors.Error
			require.True(t, errors.As(err, &rich))
			fields := map[string]bool{}
			for _, fe := range rich.ValidationErrors {
				fields[fe.Field] = true
			}
			assert.True(t, fields[tt.field], "expected field %s in %v", tt.field, rich.ValidationErrors)
		})
	}
}

func TestRegisterUserHandler_Hashid(t *testing.T) {
	handler := devconnect.NewRegisterUserHandler(newMemUsers(), cheapHasher)

	user, err := handler.Execute(context.Background(), devconnect.RegisterUserMessage{
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  "123456",
		UseHashid: true,
	})
	require.NoError(t, err)

	want, err := hashid.NewUUID("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, user.ID)
}

func TestRegisterUserHandler_CancelledContext(t *testing.T) {
	users := newMemUsers()
	handler := devconnect.NewRegisterUserHandler(users, cheapHasher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, devconnect.RegisterUserMessage{
		Name: "Ada", Email: "ada@example.com", Password: "123456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, users.count())
}

func TestRegisterUserHandler_PasswordAtBcryptLimit(t *testing.T) {
	handler := devconnect.NewRegisterUserHandler(newMemUsers(), cheapHasher)
	password := strings.Repeat("a", devconnect.MaxPasswordBytes)

	user, err := handler.Execute(context.Background(), devconnect.RegisterUserMessage{
		Name: "Ada", Email: "ada@example.com", Password: password,
	})
	require.NoError(t, err)
	assert.NoError(t, cheapHasher.ComparePasswordAndHash(password, user.PasswordHash))
}
