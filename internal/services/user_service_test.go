package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
)

func TestCreateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		user, err := svc.CreateUser("admin", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "admin", user.Username)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("rejects short usernames", func(t *testing.T) {
		_, err := svc.CreateUser("ab", "secret123")
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := svc.CreateUser("other", "123")
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		_, err := svc.CreateUser("admin", "secret456")
		assert.ErrorIs(t, err, apperror.ErrDuplicateKey)
	})
}

func TestAuthenticateUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.CreateUser("admin", "secret123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.AuthenticateUser("admin", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AuthenticateUser("admin", "wrong-password")
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown user fails identically", func(t *testing.T) {
		_, err := svc.AuthenticateUser("nobody", "secret123")
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestSeedAdmin(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	require.NoError(t, svc.SeedAdmin("admin", "changeme"))

	_, err := svc.AuthenticateUser("admin", "changeme")
	assert.NoError(t, err)

	// Seeding again must not overwrite existing accounts.
	require.NoError(t, svc.SeedAdmin("admin", "another-password"))
	_, err = svc.AuthenticateUser("admin", "changeme")
	assert.NoError(t, err)
}
