package boltdb

import (
	"context"
	"encoding/json"

	"go.etcd.io/bbolt"
)

// Снапшот-кеш коллекций. Ключи записей в bucket - те же строки, что и ключи
// удаленного хранилища; Put по отдельным ключам внутри одной транзакции дает
// merge-семантику: незатронутые ключи никогда не пропадают.
//
// Все ошибки здесь глотаются и уходят только в debug-лог: кеш - best-effort
// ускорение теплого старта, никогда не требование корректности.

// ReadAll возвращает весь снапшот; при любой ошибке - пустую карту
func (s *Storage) ReadAll(ctx context.Context) map[string]json.RawMessage {
	snapshot := make(map[string]json.RawMessage)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			// Копируем: bbolt переиспользует буферы после завершения транзакции
			value := make(json.RawMessage, len(v))
			copy(value, v)
			snapshot[string(k)] = value
			return nil
		})
	})
	if err != nil {
		s.logger.Debug("snapshot read failed", "error", err)
		return make(map[string]json.RawMessage)
	}

	return snapshot
}

// MergeWrite вливает partial в снапшот, не трогая остальные ключи
func (s *Storage) MergeWrite(ctx context.Context, partial map[string]json.RawMessage) {
	if len(partial) == 0 {
		return
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return nil
		}

		for key, value := range partial {
			if err := bucket.Put([]byte(key), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("snapshot write failed", "error", err)
	}
}
