package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// KeySync - одиночный sync-примитив для виджетов, живущих вне общего store:
// пара (значение, сеттер) для одного удаленного ключа. Исторически это был
// отдельный код-путь; здесь он разделяет с Flusher интерфейс RemoteWriter и
// ту же семантику дебаунса и тихого отказа, отличаясь только поверхностью.
//
// Конструирование НЕ пишет на сервер: запись запускают только правки
// пользователя. Флаг синхронизации взводится явно первым Set, а не
// сравнением с начальным значением - после реальной правки значение вполне
// может снова совпасть с начальным.
type KeySync struct {
	key    string
	remote RemoteWriter
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	value   any
	pending bool // была ли правка после создания, ожидающая записи
	timer   *time.Timer
	wg      sync.WaitGroup
}

// NewKeySync создает примитив с начальным значением.
// initial должен быть получен тем же resolveInitial-путем, что и поля store.
func NewKeySync(key string, initial any, remote RemoteWriter, delay time.Duration, logger *slog.Logger) *KeySync {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &KeySync{
		key:    key,
		remote: remote,
		delay:  delay,
		logger: logger,
		value:  initial,
	}
}

// Value возвращает текущее значение
func (k *KeySync) Value() any {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.value
}

// Set заменяет значение и перезапускает таймер дебаунса
func (k *KeySync) Set(value any) {
	k.Update(func(any) any { return value })
}

// Update применяет функцию обновления (prev) -> next как один переход
func (k *KeySync) Update(fn func(prev any) any) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.value = fn(k.value)
	k.pending = true

	if k.timer == nil {
		k.timer = time.AfterFunc(k.delay, func() {
			k.Flush(context.Background())
		})
	} else {
		k.timer.Reset(k.delay)
	}
}

// Flush немедленно пишет текущее значение, если после создания была правка.
// Отказ записи глотается: следующая правка отправит более свежее значение.
func (k *KeySync) Flush(ctx context.Context) {
	k.mu.Lock()
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
	if !k.pending {
		k.mu.Unlock()
		return
	}
	k.pending = false
	value := k.value
	k.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		k.logger.Warn("skipping unserializable value", "key", k.key, "error", err)
		return
	}

	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		if err := k.remote.UpsertDocument(ctx, k.key, raw); err != nil {
			k.logger.Warn("remote upsert failed", "key", k.key, "error", err)
		}
	}()
}

// Close сбрасывает ожидающую запись и дожидается ее завершения
func (k *KeySync) Close(ctx context.Context) {
	k.Flush(ctx)
	k.wg.Wait()
}
