package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Document представляет одну строку таблицы документов
type Document struct {
	UpdatedAt time.Time       // момент последнего upsert
	Key       string          // уникальный ключ
	Value     json.RawMessage // полное JSON значение
}

// DocumentStorage defines interface for the key/value document table.
// Upsert по ключу полностью заменяет значение - частичных обновлений и
// merge-семантики на сервере нет, разрешение конфликтов между писателями
// сводится к "последняя запись по ключу побеждает".
type DocumentStorage interface {
	// ListDocuments returns all document rows
	ListDocuments(ctx context.Context) ([]*Document, error)

	// GetDocument retrieves one row by key
	// Returns ErrDocumentNotFound if row doesn't exist
	GetDocument(ctx context.Context, key string) (*Document, error)

	// UpsertDocument inserts or fully replaces the row with the given key
	UpsertDocument(ctx context.Context, key string, value json.RawMessage) error
}
