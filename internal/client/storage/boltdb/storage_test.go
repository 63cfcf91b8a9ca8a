package boltdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(ctx, dbPath, logger)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_CreatesDatabase(t *testing.T) {
	s := setupTestStorage(t)
	assert.NotNil(t, s)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := New(ctx, "/nonexistent-dir/sub/test.db", logger)
	assert.Error(t, err)
}

func TestStorage_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(ctx, dbPath, logger)
	require.NoError(t, err)

	s.MergeWrite(ctx, map[string]json.RawMessage{
		"greenteam-equipment": json.RawMessage(`[]`),
	})
	require.NoError(t, s.Close())

	s2, err := New(ctx, dbPath, logger)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	snapshot := s2.ReadAll(ctx)
	assert.Contains(t, snapshot, "greenteam-equipment")
}
