package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/greenteam/opsboard/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string // выставляется после login/refresh, используется запросами к документам
}

// ClientAPI defines the server operations the rest of the client depends on
type ClientAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error)
	Logout(ctx context.Context, accessToken string, req api.LogoutRequest) error
	ListDocuments(ctx context.Context) ([]api.DocumentRow, error)
	GetDocument(ctx context.Context, key string) (*api.DocumentRow, error)
	UpsertDocument(ctx context.Context, key string, value json.RawMessage) error
	SetAccessToken(token string)
}

// Compile-time check
var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAccessToken устанавливает токен для последующих запросов к документам.
// Клиент используется из одной сессии, конкурентных вызовов Set нет.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, accessToken string, req api.LogoutRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", accessToken, req, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ListDocuments читает все строки таблицы документов одним запросом.
// Это bootstrap-чтение: постраничности нет, после него staleness ожидаема.
func (c *Client) ListDocuments(ctx context.Context) ([]api.DocumentRow, error) {
	var resp api.ListDocumentsResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/documents", c.accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list documents request failed: %w", err)
	}
	return resp.Documents, nil
}

// GetDocument читает одну строку по ключу
func (c *Client) GetDocument(ctx context.Context, key string) (*api.DocumentRow, error) {
	var resp api.DocumentRow
	path := "/api/v1/documents/" + url.PathEscape(key)
	err := c.doRequest(ctx, http.MethodGet, path, c.accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// UpsertDocument полностью заменяет значение по ключу
func (c *Client) UpsertDocument(ctx context.Context, key string, value json.RawMessage) error {
	path := "/api/v1/documents/" + url.PathEscape(key)
	req := api.UpsertDocumentRequest{Value: value}
	if err := c.doRequest(ctx, http.MethodPut, path, c.accessToken, req, nil); err != nil {
		return fmt.Errorf("upsert document request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Ошибочные статусы: пытаемся прочитать ErrorResponse
	if resp.StatusCode >= 400 {
		var errResp api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
