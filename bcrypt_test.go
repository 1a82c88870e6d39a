package devconnect_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-devconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hash, err := cheapHasher.HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)

	assert.NoError(t, cheapHasher.ComparePasswordAndHash("123456", hash))
	assert.ErrorIs(t, cheapHasher.ComparePasswordAndHash("654321", hash), devconnect.ErrMismatchedHashAndPassword)
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	_, err := cheapHasher.HashPassword("")
	assert.ErrorIs(t, err, devconnect.ErrNoEmptyString)
}

func TestBcryptHasher_InvalidHash(t *testing.T) {
	err := cheapHasher.ComparePasswordAndHash("123456", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, devconnect.ErrMismatchedHashAndPassword)
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, devconnect.DefaultBcryptCost, devconnect.NewBcryptHasher(0).Cost)
	assert.Equal(t, devconnect.DefaultBcryptCost, devconnect.NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, devconnect.NewBcryptHasher(12).Cost)
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	_, err := cheapHasher.HashPassword(strings.Repeat("x", 80))
	require.Error(t, err)
	assert.ErrorIs(t, err, devconnect.ErrPasswordTooLong)

	status, body := devconnect.RenderError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, devconnect.ErrorsResponse{Errors: []devconnect.ErrorItem{
		{Msg: "Password must be at most 72 bytes", Param: "password"},
	}}, body)
}
