package storage

import (
	"context"
	"encoding/json"
)

// SnapshotStorage defines interface for the local snapshot cache.
// Кеш - чисто best-effort ускорение теплого старта и офлайн-подстраховка,
// никогда не источник истины. Реализация глотает собственные ошибки:
// система остается корректной (лишь с холодным стартом), если кеш
// недоступен целиком.
type SnapshotStorage interface {
	// ReadAll возвращает весь снапшот как карту ключ → сырое JSON значение.
	// При любой ошибке возвращает пустую карту.
	ReadAll(ctx context.Context) map[string]json.RawMessage

	// MergeWrite вливает partial в снапшот: пишутся только переданные ключи,
	// остальные остаются нетронутыми. Ошибки глотаются.
	MergeWrite(ctx context.Context, partial map[string]json.RawMessage)
}
