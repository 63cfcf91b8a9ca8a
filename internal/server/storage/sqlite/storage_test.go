package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/models"
)

// Хелперы для тестов пакета

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "user-" + uuid.New().String()[:8],
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))
	return user
}

func timePtr(tm time.Time) *time.Time {
	return &tm
}
