package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/greenteam/opsboard/internal/registry"
)

// DefaultFlushDelay - окно дебаунса перед записью. Достаточно длинное, чтобы
// склеить серию быстрых правок, достаточно короткое, чтобы сохранение
// ощущалось мгновенным.
const DefaultFlushDelay = 500 * time.Millisecond

// RemoteWriter - узкий интерфейс удаленного хранилища документов.
// Запись по ключу полностью заменяет предыдущее значение.
type RemoteWriter interface {
	UpsertDocument(ctx context.Context, key string, value json.RawMessage) error
}

// SnapshotCache - локальный снапшот-кеш. Строго best-effort: реализация
// глотает свои ошибки, корректность системы от кеша не зависит.
type SnapshotCache interface {
	MergeWrite(ctx context.Context, partial map[string]json.RawMessage)
}

// Flusher - сквозной подписчик персистентности. Вешается один раз на все
// поля store при создании сессии и живет до ее конца. Любая правка помечает
// ключ поля грязным и перезапускает общий таймер дебаунса; по срабатыванию
// таймера текущие (на момент flush, не на момент правки) значения грязных
// ключей синхронно пишутся в локальный кеш и независимо, fire-and-forget,
// отправляются на сервер. Отказ удаленной записи не ретраится и не виден
// пользователю: следующая правка сама отправит уже более свежее значение.
type Flusher struct {
	store  *Store
	cache  SnapshotCache
	remote RemoteWriter
	delay  time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	dirty map[string]struct{} // удаленные ключи, ожидающие flush
	timer *time.Timer
	wg    sync.WaitGroup // незавершенные удаленные записи
}

// NewFlusher создает flusher и подписывает его на все поля store
func NewFlusher(s *Store, cache SnapshotCache, remote RemoteWriter, delay time.Duration, logger *slog.Logger) *Flusher {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	f := &Flusher{
		store:  s,
		cache:  cache,
		remote: remote,
		delay:  delay,
		logger: logger,
		dirty:  make(map[string]struct{}),
	}
	s.SubscribeAll(func(name string, _, _ any) {
		f.markDirty(name)
	})
	return f
}

// markDirty помечает ключ поля грязным и (пере)запускает таймер дебаунса.
// Вызывается из колбэка store, поэтому в store отсюда не ходим.
func (f *Flusher) markDirty(name string) {
	c, ok := registry.ByName(name)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.dirty[c.Key] = struct{}{}
	if f.timer == nil {
		f.timer = time.AfterFunc(f.delay, func() {
			f.Flush(context.Background())
		})
	} else {
		f.timer.Reset(f.delay)
	}
}

// Flush немедленно сбрасывает накопленные грязные ключи: снимает текущее
// значение каждого ключа, синхронно мержит снапшот в локальный кеш и
// запускает независимую удаленную запись на каждый ключ. Правки, пришедшие
// по другим ключам во время удаленных записей, остаются ждать следующего
// цикла и не теряются.
func (f *Flusher) Flush(ctx context.Context) {
	f.mu.Lock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	keys := f.dirty
	f.dirty = make(map[string]struct{})
	f.mu.Unlock()

	if len(keys) == 0 {
		return
	}

	// Снимаем текущее состояние: внутри одного окна дебаунса побеждает
	// последнее установленное значение, промежуточные никуда не пишутся.
	partial := make(map[string]json.RawMessage, len(keys))
	for key := range keys {
		value, ok := f.store.ValueByKey(key)
		if !ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			f.logger.Warn("skipping unserializable field", "key", key, "error", err)
			continue
		}
		partial[key] = raw
	}

	// Локальный кеш - синхронно, до возврата: перезагрузка сразу после
	// сбоя найдет свежую локальную копию.
	f.cache.MergeWrite(ctx, partial)

	// Удаленные записи - по одной на ключ, независимо друг от друга.
	// Отказ одного ключа не блокирует и не отменяет остальные.
	for key, raw := range partial {
		f.wg.Add(1)
		go func(key string, raw json.RawMessage) {
			defer f.wg.Done()
			if err := f.remote.UpsertDocument(ctx, key, raw); err != nil {
				f.logger.Warn("remote upsert failed", "key", key, "error", err)
			}
		}(key, raw)
	}
}

// Close сбрасывает оставшиеся грязные ключи и дожидается незавершенных
// удаленных записей. Нужен процессу, который завершается (CLI);
// браузерному оригиналу хватало открытой страницы.
func (f *Flusher) Close(ctx context.Context) {
	f.Flush(ctx)
	f.wg.Wait()
}
