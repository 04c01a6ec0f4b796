package utils

import (
	"net/http"
	"testing"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenManager {
	return NewTokenManager(map[TokenKind]TokenConfig{
		AccessToken:  {Secret: "access-secret", TTL: time.Minute},
		RefreshToken: {Secret: "refresh-secret", TTL: time.Hour},
	})
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := newTestTokens()
	c := Caller{ID: 9, Role: models.RoleUser, Verify: models.Verified}

	tok, exp, err := m.Sign(AccessToken, c)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, err := m.Parse(AccessToken, tok)
	require.NoError(t, err)
	assert.Equal(t, c, claims.Caller())
}

func TestTokenManager_WrongKindRejected(t *testing.T) {
	m := newTestTokens()
	tok, _, err := m.Sign(RefreshToken, Caller{ID: 1})
	require.NoError(t, err)

	_, err = m.Parse(AccessToken, tok)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestTokenManager_Expired(t *testing.T) {
	m := newTestTokens()
	tok, err := m.SignUntil(AccessToken, Caller{ID: 1}, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = m.Parse(AccessToken, tok)
	require.Error(t, err)
	assert.Equal(t, "jwt expired", err.Error())
}

func TestTokenManager_MissingSecret(t *testing.T) {
	_, _, err := newTestTokens().Sign(EmailVerifyToken, Caller{ID: 1})
	assert.Error(t, err)
}
