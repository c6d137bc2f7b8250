package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, claims, err := GenerateToken("ana", "EMPLOYEE", "secret", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana", claims.Subject)

	parsed, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", parsed.Subject)
	assert.Equal(t, "EMPLOYEE", parsed.Role)
	assert.True(t, parsed.ExpiresAt.After(time.Now()))
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("ana", "EMPLOYEE", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	token, _, err := GenerateToken("ana", "EMPLOYEE", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}
