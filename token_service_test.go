package devconnect_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testIdentity() devconnect.Identity {
	return devconnect.NewIdentityFromUser(&devconnect.User{
		ID:    uuid.New(),
		Name:  "Ada",
		Email: "ada@example.com",
	})
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	service := devconnect.NewTokenService([]byte("test-signing-key"), 24, "", nil, nil)
	identity := testIdentity()

	token, err := service.Generate(identity)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), claims.UserID())
	assert.Equal(t, identity.ID(), claims.Subject())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt(), time.Minute)
	assert.Equal(t, 24*time.Hour, service.TTL())
}

func TestTokenService_PayloadShape(t *testing.T) {
	service := devconnect.NewTokenService([]byte("test-signing-key"), 1, "", nil, nil)
	identity := testIdentity()

	token, err := service.Generate(identity)
	require.NoError(t, err)

	parsed := &devconnect.JWTClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)
	assert.Equal(t, identity.ID(), parsed.User.ID)
	assert.NotEmpty(t, parsed.ID, "jti")
}

func TestTokenService_Rejections(t *testing.T) {
	key := []byte("test-signing-key")
	identity := testIdentity()

	t.Run("other secret", func(t *testing.T) {
		issuer := devconnect.NewTokenService([]byte("another-signing-key"), 24, "", nil, nil)
		token, err := issuer.Generate(identity)
		require.NoError(t, err)

		_, err = devconnect.NewTokenService(key, 24, "", nil, nil).Validate(token)
		require.Error(t, err)
		assert.True(t, errors.IsAuth(err))
		assert.False(t, devconnect.IsTokenExpiredError(err))
	})

	t.Run("expired", func(t *testing.T) {
		service := devconnect.NewTokenService(key, -1, "", nil, nil)
		token, err := service.Generate(identity)
		require.NoError(t, err)

		_, err = service.Validate(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, devconnect.ErrTokenExpired)
		assert.True(t, devconnect.IsTokenExpiredError(err))
	})

	t.Run("malformed", func(t *testing.T) {
		service := devconnect.NewTokenService(key, 24, "", nil, nil)
		_, err := service.Validate("not-a-token")
		require.Error(t, err)
		assert.True(t, devconnect.IsMalformedError(err))
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user": map[string]any{"id": identity.ID()},
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(key)
		require.NoError(t, err)

		_, err = devconnect.NewTokenService(key, 24, "", nil, nil).Validate(token)
		require.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		service := devconnect.NewTokenService(key, 24, "", nil, nil)
		token, err := service.SignClaims(&devconnect.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		require.NoError(t, err)

		_, err = service.Validate(token)
		assert.ErrorIs(t, err, devconnect.ErrUnableToDecodeSession)
	})

	t.Run("issuer and audience", func(t *testing.T) {
		issuer := devconnect.NewTokenService(key, 24, "devconnect", jwt.ClaimStrings{"web"}, nil)
		token, err := issuer.Generate(identity)
		require.NoError(t, err)

		_, err = issuer.Validate(token)
		assert.NoError(t, err)

		other := devconnect.NewTokenService(key, 24, "someone-else", jwt.ClaimStrings{"web"}, nil)
		_, err = other.Validate(token)
		assert.Error(t, err)

		otherAud := devconnect.NewTokenService(key, 24, "devconnect", jwt.ClaimStrings{"mobile"}, nil)
		_, err = otherAud.Validate(token)
		assert.Error(t, err)
	})
}

func TestTokenService_GenerateRequiresID(t *testing.T) {
	service := devconnect.NewTokenService([]byte("k"), 24, "", nil, nil)

	_, err := service.Generate(nil)
	assert.Error(t, err)

	_, err = service.SignClaims(nil)
	assert.Error(t, err)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	logger := &MockLogger{}
	logger.On("Error", mock.Anything, mock.Anything).Return()

	cfg := defaultTestConfig()
	service := devconnect.NewTokenServiceFromConfig(cfg, logger)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user": map[string]any{"id": "x"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.Error(t, err)
}
