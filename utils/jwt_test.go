package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testTokens()
	tok, err := m.RefreshToken("user-1")
	require.NoError(t, err)

	id, err := m.ParseRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	m := testTokens()
	tok, err := m.AccessToken("user-1", "donor")
	require.NoError(t, err)

	_, err = m.ParseRefresh(tok)
	assert.Error(t, err)
}

func TestAccessTokenClaims(t *testing.T) {
	m := testTokens()
	tok, err := m.AccessToken("user-1", "provider")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (interface{}, error) { return m.AccessSecret, nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["userId"])
	assert.Equal(t, "provider", claims["role"])
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	m := testTokens()
	m.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	tok, err := m.RefreshToken("user-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseRefresh(tok)
	assert.Error(t, err)
}

func TestClaimString(t *testing.T) {
	_, err := ClaimString(jwt.MapClaims{}, "userId")
	assert.Error(t, err)
	_, err = ClaimString(jwt.MapClaims{"userId": 7.0}, "userId")
	assert.Error(t, err)
	v, err := ClaimString(jwt.MapClaims{"userId": "abc"}, "userId")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}
