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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenteam/opsboard/internal/server/storage/sqlite"
	"github.com/greenteam/opsboard/pkg/api"
)

func setupDocumentsHandler(t *testing.T) *DocumentsHandler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDocumentsHandler(logger, store)
}

// authedRequest строит запрос с user_id в контексте, как после AuthMiddleware
func authedRequest(method, target, key string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if key != "" {
		req.SetPathValue("key", key)
	}

	ctx := context.WithValue(req.Context(), UserIDKey, "user-1")
	ctx = context.WithValue(ctx, UsernameKey, "marcus")
	return req.WithContext(ctx)
}

func upsertBody(t *testing.T, value string) []byte {
	t.Helper()
	data, err := json.Marshal(api.UpsertDocumentRequest{Value: json.RawMessage(value)})
	require.NoError(t, err)
	return data
}

func TestDocuments_UpsertAndGet(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPut, "/api/v1/documents/greenteam-equipment",
		"greenteam-equipment", upsertBody(t, `[{"id":"e1"}]`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/v1/documents/greenteam-equipment",
		"greenteam-equipment", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var row api.DocumentRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, "greenteam-equipment", row.Key)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(row.Value))
}

func TestDocuments_UpsertReplacesValue(t *testing.T) {
	h := setupDocumentsHandler(t)

	for _, value := range []string{`[{"id":"e1"},{"id":"e2"}]`, `[{"id":"e3"}]`} {
		rec := httptest.NewRecorder()
		h.Upsert(rec, authedRequest(http.MethodPut, "/api/v1/documents/greenteam-equipment",
			"greenteam-equipment", upsertBody(t, value)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/v1/documents/greenteam-equipment",
		"greenteam-equipment", nil))

	var row api.DocumentRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.JSONEq(t, `[{"id":"e3"}]`, string(row.Value), "upsert is a full-value replace")
}

func TestDocuments_List(t *testing.T) {
	h := setupDocumentsHandler(t)

	for _, key := range []string{"greenteam-announcements", "greenteam-equipment"} {
		rec := httptest.NewRecorder()
		h.Upsert(rec, authedRequest(http.MethodPut, "/api/v1/documents/"+key, key, upsertBody(t, `[]`)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/v1/documents", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ListDocumentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Documents, 2)
}

func TestDocuments_ListEmptyStore(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/v1/documents", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ListDocumentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Documents)
}

func TestDocuments_RequireAuthenticatedContext(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/documents/greenteam-equipment",
		bytes.NewReader(upsertBody(t, `[]`)))
	req.SetPathValue("key", "greenteam-equipment")
	h.Upsert(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDocuments_GetNotFound(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/v1/documents/greenteam-ghost",
		"greenteam-ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocuments_InvalidKey(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/v1/documents/NO", "NO", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPut, "/api/v1/documents/NO", "NO", upsertBody(t, `[]`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocuments_UpsertMissingValue(t *testing.T) {
	h := setupDocumentsHandler(t)

	rec := httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPut, "/api/v1/documents/greenteam-equipment",
		"greenteam-equipment", []byte(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
