package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	id := uuid.New()

	token, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(DefaultTokenTTL - time.Minute) }
	_, err = issuer.Verify(token)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(DefaultTokenTTL + time.Minute) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Verify("not-a-token")
	assert.Error(t, err)
}

func TestMissingSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Issue(uuid.New())
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
