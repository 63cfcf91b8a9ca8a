package registry

import (
	"bytes"
	"encoding/json"

	"github.com/greenteam/opsboard/internal/models"
)

// Пакет registry описывает статическую таблицу коллекций приложения:
// логическое имя поля → удаленный ключ → стартовое значение по умолчанию.
// Таблица фиксирована и известна на старте, коллекции не добавляются динамически.

// Collection описывает одну коллекцию реестра
type Collection struct {
	Name    string                               // логическое имя поля в сторе
	Key     string                               // ключ в удаленном хранилище и в локальном кеше
	Default func() any                           // свежая копия стартового значения
	decode  func(json.RawMessage) (any, error)   // десериализация удаленного значения в типизированное
}

// collection собирает типизированную запись реестра.
// seed вызывается на каждое обращение, чтобы значение по умолчанию
// нельзя было испортить через общий slice.
func collection[T any](name, key string, seed func() T) Collection {
	return Collection{
		Name:    name,
		Key:     key,
		Default: func() any { return seed() },
		decode: func(raw json.RawMessage) (any, error) {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

var collections = []Collection{
	collection("announcements", "greenteam-announcements", func() []models.Announcement {
		return []models.Announcement{}
	}),
	collection("dailyChecklist", "greenteam-daily-checklist", defaultDailyChecklist),
	collection("equipment", "greenteam-equipment", defaultEquipment),
	collection("repairRequests", "greenteam-repair-requests", func() []models.RepairRequest {
		return []models.RepairRequest{}
	}),
	collection("mileageLog", "greenteam-mileage-log", func() []models.MileageEntry {
		return []models.MileageEntry{}
	}),
	collection("playbooks", "greenteam-playbooks", defaultPlaybooks),
	collection("suggestions", "greenteam-suggestions", func() []models.Suggestion {
		return []models.Suggestion{}
	}),
	collection("timeOffRequests", "greenteam-time-off", func() []models.TimeOffRequest {
		return []models.TimeOffRequest{}
	}),
	collection("buybackBoard", "greenteam-buyback-board", defaultBuybackBoard),
	collection("trainingModules", "greenteam-training", defaultTrainingModules),
}

// All возвращает все коллекции реестра в фиксированном порядке
func All() []Collection {
	return collections
}

// ByName находит коллекцию по логическому имени поля
func ByName(name string) (Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// ByKey находит коллекцию по удаленному ключу
func ByKey(key string) (Collection, bool) {
	for _, c := range collections {
		if c.Key == key {
			return c, true
		}
	}
	return Collection{}, false
}

// ResolveInitial выбирает стартовое значение поля.
// Значение по умолчанию подставляется ТОЛЬКО если удаленного значения нет
// (отсутствует или JSON null). Присутствующий пустой массив - легитимно
// пустая коллекция, он не заменяется на seed. Значение, которое не удалось
// разобрать, приравнивается к отсутствующему.
func ResolveInitial(raw json.RawMessage, c Collection) any {
	if isAbsent(raw) {
		return c.Default()
	}
	v, err := c.decode(raw)
	if err != nil {
		return c.Default()
	}
	return v
}

// isAbsent сообщает, что удаленного значения нет (nil или JSON null)
func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Стартовые наборы для новой установки. ID фиксированные: важна лишь
// уникальность внутри истории одной инсталляции.

func defaultDailyChecklist() []models.ChecklistItem {
	return []models.ChecklistItem{
		{ID: "seed-checklist-trucks", Label: "Check truck oil and fuel"},
		{ID: "seed-checklist-trailer", Label: "Secure trailer and ramps"},
		{ID: "seed-checklist-blades", Label: "Inspect mower blades"},
		{ID: "seed-checklist-water", Label: "Load water cooler"},
		{ID: "seed-checklist-route", Label: "Review route sheet"},
	}
}

func defaultEquipment() []models.Equipment {
	return []models.Equipment{
		{ID: "seed-equip-mower-1", Name: "Mower #1", Model: "Scag Turf Tiger II", Status: "operational"},
		{ID: "seed-equip-mower-2", Name: "Mower #2", Model: "Exmark Lazer Z", Status: "operational"},
		{ID: "seed-equip-trimmer-1", Name: "Trimmer #1", Model: "Stihl FS 91 R", Status: "operational"},
		{ID: "seed-equip-blower-1", Name: "Blower #1", Model: "Stihl BR 600", Status: "operational"},
	}
}

func defaultPlaybooks() []models.Playbook {
	return []models.Playbook{
		{ID: "seed-playbook-mowing", Title: "Mowing standards", Category: "mowing",
			Body: "Stripe direction alternates weekly. Blades at 3.5 inches unless the customer sheet says otherwise."},
		{ID: "seed-playbook-safety", Title: "Trailer safety", Category: "safety",
			Body: "Ramps locked, straps on every mower, lights checked before leaving the yard."},
	}
}

func defaultBuybackBoard() models.BuybackBoard {
	return models.BuybackBoard{
		Order: []string{"inbox", "triage", "done"},
		Columns: map[string][]models.BuybackTask{
			"inbox":  {},
			"triage": {},
			"done":   {},
		},
	}
}

func defaultTrainingModules() []models.TrainingModule {
	return []models.TrainingModule{
		{ID: "seed-training-welcome", Title: "Welcome to the crew", Required: true,
			Body: "Company overview, crew structure, who to call."},
		{ID: "seed-training-equipment", Title: "Equipment basics", Required: true,
			Body: "Daily checks, fueling, what never goes in the diesel truck."},
	}
}
