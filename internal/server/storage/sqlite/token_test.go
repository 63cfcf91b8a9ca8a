package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/models"
	"github.com/greenteam/opsboard/internal/server/storage"
)

func TestTokenStorage_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	user := createTestUser(t, ctx, s)

	token := &models.RefreshToken{
		Token:     "refresh-token-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))

	retrieved, err := s.GetRefreshToken(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.Equal(t, token.Token, retrieved.Token)
	assert.Equal(t, user.ID, retrieved.UserID)
	assert.WithinDuration(t, token.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestTokenStorage_GetNotFound(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetRefreshToken(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	user := createTestUser(t, ctx, s)

	token := &models.RefreshToken{
		Token:     "to-delete",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRefreshToken(ctx, token))
	require.NoError(t, s.DeleteRefreshToken(ctx, "to-delete"))

	_, err := s.GetRefreshToken(ctx, "to-delete")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	user := createTestUser(t, ctx, s)
	other := createTestUser(t, ctx, s)

	for _, name := range []string{"t1", "t2"} {
		require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
			Token:     name,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "other-token",
		UserID:    other.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	deleted, err := s.DeleteUserTokens(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Чужие токены не задеты
	_, err = s.GetRefreshToken(ctx, "other-token")
	assert.NoError(t, err)
}

func TestTokenStorage_DeleteExpiredTokens(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	user := createTestUser(t, ctx, s)

	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "expired",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}))
	require.NoError(t, s.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     "live",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	deleted, err := s.DeleteExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = s.GetRefreshToken(ctx, "expired")
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = s.GetRefreshToken(ctx, "live")
	assert.NoError(t, err)
}
