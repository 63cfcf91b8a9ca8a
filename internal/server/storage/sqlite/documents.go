package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/greenteam/opsboard/internal/server/storage"
)

// ListDocuments returns all document rows
func (s *Storage) ListDocuments(ctx context.Context) ([]*storage.Document, error) {
	query := `
		SELECT key, value, updated_at
		FROM documents
		ORDER BY key ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var docs []*storage.Document
	for rows.Next() {
		doc := &storage.Document{}
		var value string

		if err := rows.Scan(&doc.Key, &value, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc.Value = json.RawMessage(value)
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// GetDocument retrieves one row by key
func (s *Storage) GetDocument(ctx context.Context, key string) (*storage.Document, error) {
	query := `
		SELECT key, value, updated_at
		FROM documents
		WHERE key = ?
	`

	doc := &storage.Document{}
	var value string

	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc.Key, &value, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Value = json.RawMessage(value)
	return doc, nil
}

// UpsertDocument inserts or fully replaces the row with the given key.
// Ключ конфликта - key; value полностью заменяет предыдущее значение,
// никакого merge на сервере нет.
func (s *Storage) UpsertDocument(ctx context.Context, key string, value json.RawMessage) error {
	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}
