package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/greenteam/opsboard/internal/server/storage"
	"github.com/greenteam/opsboard/internal/validation"
	"github.com/greenteam/opsboard/pkg/api"
)

// DocumentStorage определяет интерфейс для работы со строками документов
type DocumentStorage interface {
	ListDocuments(ctx context.Context) ([]*storage.Document, error)
	GetDocument(ctx context.Context, key string) (*storage.Document, error)
	UpsertDocument(ctx context.Context, key string, value json.RawMessage) error
}

// DocumentsHandler обслуживает таблицу документов: чтение всех строк для
// bootstrap клиента и upsert по ключу. Значения непрозрачны - сервер не
// валидирует содержимое коллекций, только ключ.
type DocumentsHandler struct {
	logger  *slog.Logger
	storage DocumentStorage
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(logger *slog.Logger, storage DocumentStorage) *DocumentsHandler {
	return &DocumentsHandler{
		logger:  logger,
		storage: storage,
	}
}

// List обрабатывает GET /api/v1/documents
// Возвращает все строки таблицы - bootstrap-чтение клиента
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docs, err := h.storage.ListDocuments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]api.DocumentRow, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, api.DocumentRow{
			Key:   doc.Key,
			Value: doc.Value,
		})
	}

	h.logger.InfoContext(ctx, "documents listed",
		slog.String("user_id", userID),
		slog.Int("count", len(rows)))

	h.sendJSON(w, api.ListDocumentsResponse{Documents: rows}, http.StatusOK)
}

// Get обрабатывает GET /api/v1/documents/{key}
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.PathValue("key")
	if err := validation.ValidateKey(key); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.storage.GetDocument(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			h.sendError(w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.String("key", key), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, api.DocumentRow{Key: doc.Key, Value: doc.Value}, http.StatusOK)
}

// Upsert обрабатывает PUT /api/v1/documents/{key}
// Значение полностью заменяет предыдущее: побеждает последний писатель
func (h *DocumentsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := r.PathValue("key")
	if err := validation.ValidateKey(key); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req api.UpsertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode upsert request", slog.String("key", key), slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Value) == 0 {
		h.sendError(w, "value is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.UpsertDocument(ctx, key, req.Value); err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert document", slog.String("key", key), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document upserted",
		slog.String("user_id", userID),
		slog.String("key", key),
		slog.Int("value_bytes", len(req.Value)))

	h.sendJSON(w, api.UpsertDocumentResponse{Key: key, Message: "ok"}, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *DocumentsHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *DocumentsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
