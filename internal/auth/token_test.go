package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)

	signed, err := tm.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tm.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	other := NewTokenManager("other-secret", time.Minute)

	signed, err := tm.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = other.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	signed, err := tm.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	_, err := tm.Parse("not-a-token")
	assert.Error(t, err)
}
