package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, "user-1", "marcus")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.EqualValues(t, cfg.AccessTokenTTL.Seconds(), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "marcus", claims.Username)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(testJWTConfig(), "user-1", "marcus")
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = []byte("different-secret")

	_, err = ValidateAccessToken(otherCfg, token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken(testJWTConfig(), "not.a.jwt")
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = -time.Minute

	token, _, err := GenerateAccessToken(cfg, "user-1", "marcus")
	require.NoError(t, err)

	_, err = ValidateAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	cfg := testJWTConfig()

	t1, exp1, err := GenerateRefreshToken(cfg)
	require.NoError(t, err)
	t2, _, err := GenerateRefreshToken(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.WithinDuration(t, time.Now().Add(cfg.RefreshTokenTTL), exp1, time.Minute)
}
