package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/client/storage"
)

func TestAuth_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	auth := &storage.AuthData{
		Username:     "marcus",
		UserID:       "user-1",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}

	require.NoError(t, s.SaveAuth(ctx, auth))

	got, err := s.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.Username, got.Username)
	assert.Equal(t, auth.AccessToken, got.AccessToken)
	assert.Equal(t, auth.RefreshToken, got.RefreshToken)
	assert.Equal(t, auth.ExpiresAt, got.ExpiresAt)
}

func TestAuth_GetWithoutSave(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestAuth_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Username: "old"}))
	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Username: "new"}))

	got, err := s.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Username)
}

func TestAuth_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{Username: "marcus"}))
	require.NoError(t, s.DeleteAuth(ctx))

	_, err := s.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestAuth_DeleteWithoutSave(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	assert.ErrorIs(t, s.DeleteAuth(ctx), storage.ErrAuthNotFound)
}

func TestAuth_IsAuthenticated(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	ok, err := s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveAuth(ctx, &storage.AuthData{
		Username:  "marcus",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}))

	ok, err = s.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
