package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/greenteam/opsboard/internal/registry"
)

// Store представляет реактивное in-memory состояние сессии: по одному полю
// на каждую коллекцию реестра. Поля создаются один раз при конструировании
// из bootstrap-карты, мутируются только через Set/Update и живут до конца
// сессии. Store - не синглтон: каждая сессия (и каждый тест) строит свой.
//
// Дисциплина иммутабельности: значение поля всегда заменяется целиком новым
// slice/структурой. Мутация значения на месте в обход сеттера ломает
// отслеживание изменений и является нарушением контракта, а не стилем.
type Store struct {
	mu     sync.Mutex
	fields map[string]*field // по логическому имени
	byKey  map[string]string // удаленный ключ → логическое имя
	global []ChangeFunc      // подписчики на изменения любого поля
}

// ChangeFunc вызывается при изменении поля: имя, новое и старое значение
type ChangeFunc func(name string, newValue, oldValue any)

type field struct {
	value   any
	subs    map[int]func(newValue, oldValue any)
	nextSub int
}

// New строит Store из bootstrap-карты ключ → сырое JSON значение.
// Для каждой коллекции реестра берется удаленное значение, если оно есть
// (включая легитимно пустой массив), иначе - значение по умолчанию.
// Частичная или пустая карта (после ошибки bootstrap) дает рабочий store
// целиком на значениях по умолчанию.
func New(bootstrap map[string]json.RawMessage) *Store {
	s := &Store{
		fields: make(map[string]*field),
		byKey:  make(map[string]string),
	}
	for _, c := range registry.All() {
		s.fields[c.Name] = &field{
			value: registry.ResolveInitial(bootstrap[c.Key], c),
			subs:  make(map[int]func(newValue, oldValue any)),
		}
		s.byKey[c.Key] = c.Name
	}
	return s
}

// Get возвращает текущее значение поля.
// Возвращенное значение нельзя мутировать - только заменять через Set/Update.
func (s *Store) Get(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mustField(name).value
}

// Set атомарно заменяет значение поля и синхронно уведомляет подписчиков
// этого поля и глобальных подписчиков. Подписчики не пересматривают чужие
// поля: уведомление стоит O(подписчики этого поля).
func (s *Store) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(name, func(any) any { return value })
}

// Update атомарно применяет функцию обновления (prev) -> next к полю.
// Чтение prev и запись next - один переход состояния, промежуточных
// значений никто не наблюдает.
func (s *Store) Update(name string, fn func(prev any) any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(name, fn)
}

// apply выполняет переход и рассылает уведомления под блокировкой store -
// это Go-эквивалент однопоточного event loop исходной системы. Колбэки
// обязаны быть короткими и не обращаться обратно в store.
func (s *Store) apply(name string, fn func(prev any) any) {
	f := s.mustField(name)
	oldValue := f.value
	newValue := fn(oldValue)
	f.value = newValue

	for _, cb := range f.subs {
		cb(newValue, oldValue)
	}
	for _, cb := range s.global {
		cb(name, newValue, oldValue)
	}
}

// Subscribe подписывает колбэк на изменения одного поля.
// Колбэк вызывается с (новое, старое) на каждый Set/Update этого поля.
// Возвращенная функция снимает подписку.
func (s *Store) Subscribe(name string, cb func(newValue, oldValue any)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.mustField(name)
	id := f.nextSub
	f.nextSub++
	f.subs[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(f.subs, id)
	}
}

// SubscribeAll подписывает колбэк на изменения всех полей сразу.
// Используется слоем персистентности; подписка живет до конца сессии.
func (s *Store) SubscribeAll(cb ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = append(s.global, cb)
}

// ValueByKey возвращает текущее значение поля по удаленному ключу.
// Слой персистентности снимает значения именно в момент flush,
// а не в момент правки - побеждает последняя запись.
func (s *Store) ValueByKey(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return s.fields[name].value, true
}

// mustField возвращает поле или паникует: имя вне реестра - ошибка программиста
func (s *Store) mustField(name string) *field {
	f, ok := s.fields[name]
	if !ok {
		panic(fmt.Sprintf("store: unknown field %q", name))
	}
	return f
}

// Value возвращает типизированное значение поля.
// Паникует при несоответствии типа - реестр статический, тип известен.
func Value[T any](s *Store, name string) T {
	return s.Get(name).(T)
}

// Apply применяет типизированную функцию обновления к полю
func Apply[T any](s *Store, name string, fn func(prev T) T) {
	s.Update(name, func(prev any) any {
		return fn(prev.(T))
	})
}
