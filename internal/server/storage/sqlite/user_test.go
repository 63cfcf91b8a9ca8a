package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/models"
	"github.com/greenteam/opsboard/internal/server/storage"
)

func TestUserStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "marcus",
		PasswordHash: "bcrypt-hash",
		CreatedAt:    time.Now(),
		LastLogin:    nil,
	}
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.Nil(t, retrieved.LastLogin)

	byName, err := s.GetUserByUsername(ctx, "marcus")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserStorage_CreateUserWithLastLogin(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "dana",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		LastLogin:    timePtr(time.Now()),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastLogin)
}

func TestUserStorage_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	first := &models.User{ID: uuid.New().String(), Username: "duplicate", PasswordHash: "h1", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, first))

	second := &models.User{ID: uuid.New().String(), Username: "duplicate", PasswordHash: "h2", CreatedAt: time.Now()}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserNotFound(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	user := createTestUser(t, ctx, s)
	loginTime := time.Now()

	require.NoError(t, s.UpdateLastLogin(ctx, user.ID, loginTime))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastLogin)
	assert.WithinDuration(t, loginTime, *retrieved.LastLogin, time.Second)
}
