package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/greenteam/opsboard/internal/client/storage"
)

// Сессия одна на клиент, поэтому ключ фиксированный.
var authKey = []byte("current")

// SaveAuth записывает сессию, затирая предыдущую.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	payload, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put(authKey, payload); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth возвращает сохраненную сессию или storage.ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		raw := bucket.Get(authKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}

		if err := json.Unmarshal(raw, &auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// DeleteAuth удаляет сессию (logout). Отсутствие сессии считается ошибкой,
// чтобы вызывающий мог отличить повторный logout.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if bucket.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}

		if err := bucket.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

// IsAuthenticated сообщает, есть ли локально живая (непросроченная) сессия.
// Не ходит на сервер: продлением занимается auth.Service.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, err
	}

	return time.Now().Before(time.Unix(auth.ExpiresAt, 0)), nil
}
