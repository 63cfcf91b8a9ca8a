package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientapi "github.com/greenteam/opsboard/internal/client/api"
	"github.com/greenteam/opsboard/internal/client/storage"
	"github.com/greenteam/opsboard/internal/validation"
	"github.com/greenteam/opsboard/pkg/api"
)

// ErrNotAuthenticated возвращается, когда локальной сессии нет
// и команда требует входа.
var ErrNotAuthenticated = errors.New("not authenticated: run 'opsboard login' first")

// Service связывает API сервера и локальное хранилище сессии:
// регистрация, вход с сохранением токенов, выход, продление сессии.
type Service struct {
	apiClient clientapi.ClientAPI
	storage   storage.AuthStorage
}

// NewService creates a new auth service
func NewService(apiClient clientapi.ClientAPI, authStorage storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		storage:   authStorage,
	}
}

// Register регистрирует нового пользователя на сервере
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, api.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	return resp.UserID, nil
}

// Login выполняет вход и сохраняет токены в локальном хранилище
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	auth := &storage.AuthData{
		Username:     username,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}

	if err := s.storage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return auth, nil
}

// Logout отзывает refresh token на сервере и удаляет локальную сессию.
// Отсутствие локальной сессии - не ошибка.
func (s *Service) Logout(ctx context.Context) error {
	auth, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	// Отзыв на сервере best-effort: локальную сессию чистим в любом случае
	_ = s.apiClient.Logout(ctx, auth.AccessToken, api.LogoutRequest{
		RefreshToken: auth.RefreshToken,
	})

	if err := s.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session возвращает действующую сессию, при необходимости продлевая ее
// по refresh token. Если сессии нет и продлить нечем - ErrNotAuthenticated.
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// Access token еще жив - пользуемся им
	if time.Now().Before(time.Unix(auth.ExpiresAt, 0)) {
		s.apiClient.SetAccessToken(auth.AccessToken)
		return auth, nil
	}

	// Пробуем продлить по refresh token
	resp, err := s.apiClient.Refresh(ctx, api.RefreshRequest{RefreshToken: auth.RefreshToken})
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	auth.AccessToken = resp.AccessToken
	auth.RefreshToken = resp.RefreshToken
	auth.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()

	if err := s.storage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save refreshed session: %w", err)
	}

	s.apiClient.SetAccessToken(auth.AccessToken)
	return auth, nil
}

// IsAuthenticated проверяет наличие непросроченной сессии
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.storage.IsAuthenticated(ctx)
}
