package models

import (
	"time"

	"github.com/google/uuid"
)

// Записи коллекций операционной доски. Каждая запись несет собственный
// локально сгенерированный ID; единицей хранения и синхронизации при этом
// остается вся коллекция целиком, а не отдельная запись.
//
// Все даты хранятся как строки ISO-8601 (см. DateOnly/Timestamp) - значения
// коллекций всегда JSON-сериализуемы.

// NewID возвращает новый уникальный идентификатор записи.
// UUIDv4 защищает от коллизий между устройствами, в отличие от счетчика на сессию.
func NewID() string {
	return uuid.NewString()
}

// Timestamp возвращает текущий момент как ISO-8601 строку (UTC)
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DateOnly возвращает текущую дату как строку YYYY-MM-DD
func DateOnly() string {
	return time.Now().Format("2006-01-02")
}

// Announcement представляет объявление для команды
type Announcement struct {
	ID        string `json:"id"`         // ID уникальный идентификатор записи (UUID)
	Title     string `json:"title"`      // Title заголовок объявления
	Body      string `json:"body"`       // Body текст объявления
	Author    string `json:"author"`     // Author кто опубликовал
	PostedAt  string `json:"posted_at"`  // PostedAt момент публикации (ISO-8601)
	Pinned    bool   `json:"pinned"`     // Pinned закреплено вверху списка
	ExpiresAt string `json:"expires_at"` // ExpiresAt опциональная дата снятия (ISO-8601)
}

// ChecklistItem представляет пункт ежедневного чек-листа
type ChecklistItem struct {
	ID          string `json:"id"`           // ID уникальный идентификатор записи (UUID)
	Label       string `json:"label"`        // Label текст пункта
	Done        bool   `json:"done"`         // Done отмечен ли пункт выполненным
	CompletedBy string `json:"completed_by"` // CompletedBy кто отметил пункт
	CompletedAt string `json:"completed_at"` // CompletedAt когда отмечен (ISO-8601)
}

// Equipment представляет единицу техники (косилка, триммер, воздуходувка и т.д.)
type Equipment struct {
	ID            string `json:"id"`             // ID уникальный идентификатор записи (UUID)
	Name          string `json:"name"`           // Name название единицы ("Mower #2")
	Model         string `json:"model"`          // Model модель производителя
	Serial        string `json:"serial"`         // Serial серийный номер
	Status        string `json:"status"`         // Status состояние: "operational", "needs-repair", "retired"
	PurchasedOn   string `json:"purchased_on"`   // PurchasedOn дата покупки (YYYY-MM-DD)
	LastServiceOn string `json:"last_service_on"` // LastServiceOn дата последнего обслуживания (YYYY-MM-DD)
	Notes         string `json:"notes"`          // Notes произвольные заметки
}

// RepairRequest представляет заявку на ремонт техники
type RepairRequest struct {
	ID          string `json:"id"`           // ID уникальный идентификатор записи (UUID)
	EquipmentID string `json:"equipment_id"` // EquipmentID ссылка на запись техники
	Description string `json:"description"`  // Description что сломалось
	ReportedBy  string `json:"reported_by"`  // ReportedBy кто сообщил
	ReportedAt  string `json:"reported_at"`  // ReportedAt когда (ISO-8601)
	Resolved    bool   `json:"resolved"`     // Resolved заявка закрыта
}

// MileageEntry представляет запись журнала пробега (для экспорта в бухгалтерию)
type MileageEntry struct {
	ID       string  `json:"id"`       // ID уникальный идентификатор записи (UUID)
	Date     string  `json:"date"`     // Date дата поездки (YYYY-MM-DD)
	Driver   string  `json:"driver"`   // Driver водитель
	Vehicle  string  `json:"vehicle"`  // Vehicle транспорт
	Miles    float64 `json:"miles"`    // Miles пробег за поездку
	Purpose  string  `json:"purpose"`  // Purpose цель поездки
	Exported bool    `json:"exported"` // Exported выгружена ли запись во внешнюю систему
}

// Playbook представляет инструкцию/регламент для команды
type Playbook struct {
	ID        string `json:"id"`         // ID уникальный идентификатор записи (UUID)
	Title     string `json:"title"`      // Title название инструкции
	Body      string `json:"body"`       // Body содержимое (plain text)
	Category  string `json:"category"`   // Category раздел ("mowing", "safety", "equipment")
	UpdatedAt string `json:"updated_at"` // UpdatedAt последнее изменение (ISO-8601)
}

// Suggestion представляет предложение от сотрудника
type Suggestion struct {
	ID          string `json:"id"`           // ID уникальный идентификатор записи (UUID)
	Text        string `json:"text"`         // Text текст предложения
	SubmittedBy string `json:"submitted_by"` // SubmittedBy автор
	SubmittedAt string `json:"submitted_at"` // SubmittedAt момент подачи (ISO-8601)
}

// TimeOffRequest представляет заявку на отгул/отпуск
type TimeOffRequest struct {
	ID        string `json:"id"`         // ID уникальный идентификатор записи (UUID)
	Employee  string `json:"employee"`   // Employee сотрудник
	StartDate string `json:"start_date"` // StartDate первый день (YYYY-MM-DD)
	EndDate   string `json:"end_date"`   // EndDate последний день (YYYY-MM-DD)
	Reason    string `json:"reason"`     // Reason причина
	Status    string `json:"status"`     // Status статус: "pending", "approved", "denied"
}

// BuybackTask представляет карточку на доске разбора buyback-задач
type BuybackTask struct {
	ID        string `json:"id"`         // ID уникальный идентификатор записи (UUID)
	Title     string `json:"title"`      // Title краткое описание задачи
	Details   string `json:"details"`    // Details подробности
	CreatedAt string `json:"created_at"` // CreatedAt момент создания (ISO-8601)
}

// BuybackBoard представляет доску задач: имя колонки → карточки.
// Хранится как один объект, поле коллекции со значением-объектом (не массивом).
type BuybackBoard struct {
	Columns map[string][]BuybackTask `json:"columns"` // Columns карточки по колонкам
	Order   []string                 `json:"order"`   // Order порядок колонок слева направо
}

// TrainingModule представляет обучающий материал для онбординга
type TrainingModule struct {
	ID       string `json:"id"`       // ID уникальный идентификатор записи (UUID)
	Title    string `json:"title"`    // Title название модуля
	Body     string `json:"body"`     // Body содержимое
	Required bool   `json:"required"` // Required обязателен ли модуль для новых сотрудников
}
