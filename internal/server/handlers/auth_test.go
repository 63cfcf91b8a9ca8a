package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/server/storage/sqlite"
	"github.com/greenteam/opsboard/pkg/api"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func setupAuthHandler(t *testing.T) (*AuthHandler, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthHandler(logger, store, store, testJWTConfig()), store
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func registerTestUser(t *testing.T, h *AuthHandler, username, password string) string {
	t.Helper()

	rec := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.UserID
}

func loginTestUser(t *testing.T, h *AuthHandler, username, password string) api.TokenResponse {
	t.Helper()

	rec := doJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegister_Success(t *testing.T) {
	h, _ := setupAuthHandler(t)

	userID := registerTestUser(t, h, "marcus", "password123")
	assert.NotEmpty(t, userID)
}

func TestRegister_InvalidInput(t *testing.T) {
	h, _ := setupAuthHandler(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "short username", username: "ab", password: "password123"},
		{name: "bad characters", username: "mar cus!", password: "password123"},
		{name: "short password", username: "marcus", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
				Username: tt.username,
				Password: tt.password,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	h, _ := setupAuthHandler(t)

	registerTestUser(t, h, "marcus", "password123")

	rec := doJSON(t, h.Register, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username: "marcus",
		Password: "password456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	h, _ := setupAuthHandler(t)
	registerTestUser(t, h, "marcus", "password123")

	tokens := loginTestUser(t, h, "marcus", "password123")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Positive(t, tokens.ExpiresIn)

	// Выданный access token валидируется нашим же секретом
	claims, err := ValidateAccessToken(testJWTConfig(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "marcus", claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := setupAuthHandler(t)
	registerTestUser(t, h, "marcus", "password123")

	rec := doJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: "marcus",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := doJSON(t, h.Login, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: "ghost",
		Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	h, _ := setupAuthHandler(t)
	registerTestUser(t, h, "marcus", "password123")
	tokens := loginTestUser(t, h, "marcus", "password123")

	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var refreshed api.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// Старый refresh token одноразовый
	rec = doJSON(t, h.Refresh, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_InvalidToken(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: "made-up",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_MissingToken(t *testing.T) {
	h, _ := setupAuthHandler(t)

	rec := doJSON(t, h.Refresh, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	h, _ := setupAuthHandler(t)
	registerTestUser(t, h, "marcus", "password123")
	tokens := loginTestUser(t, h, "marcus", "password123")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// После logout refresh token недействителен
	rec2 := doJSON(t, h.Refresh, http.MethodPost, "/api/v1/auth/refresh", api.RefreshRequest{
		RefreshToken: tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
}

func TestLogout_WithoutToken(t *testing.T) {
	h, _ := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
