package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/validation"
)

const testJWTExpiry = time.Hour

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Register("Alice@Example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)

	claims, err := env.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])

	loggedIn, loginToken, err := env.auth.Login("alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	var vErr *validation.Error

	_, _, err := env.auth.Register("not-an-email", "correct horse battery")
	assert.ErrorAs(t, err, &vErr)

	_, _, err = env.auth.Register("a@example.com", "short")
	assert.ErrorAs(t, err, &vErr)

	_, _, err = env.auth.Register("a@example.com", "mypassword123456")
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register("a@example.com", "correct horse battery")
	require.NoError(t, err)

	_, _, err = env.auth.Register("a@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "a@example.com")

	_, _, err := env.auth.Login("a@example.com", "wrong password entirely")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody@example.com", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceVerifyJWTRejectsForgedToken(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")

	otherUsers := env.users
	forger := NewAuthService(otherUsers, "different-secret", testJWTExpiry)
	user, err := otherUsers.ByID(userID)
	require.NoError(t, err)

	forged, err := forger.GenerateJWT(user)
	require.NoError(t, err)

	_, err = env.auth.VerifyJWT(forged)
	assert.Error(t, err)
}
