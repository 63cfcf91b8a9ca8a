package data

import (
	"errors"
	"fmt"

	"github.com/greenteam/opsboard/internal/client/store"
	"github.com/greenteam/opsboard/internal/models"
)

// ErrRecordNotFound возвращается, когда записи с таким ID нет в коллекции
var ErrRecordNotFound = errors.New("record not found")

// Service - типизированный фасад над реактивным store. Каждая операция
// выражена как иммутабельное обновление через сеттер поля: строится новый
// slice/объект, прежнее значение не мутируется. Персистентность при этом
// не забота этого слоя - ее подхватывает подписчик store.
type Service struct {
	store *store.Store
}

// NewService creates a new data service over the session store
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Announcements возвращает текущие объявления
func (s *Service) Announcements() []models.Announcement {
	return store.Value[[]models.Announcement](s.store, "announcements")
}

// PostAnnouncement публикует объявление
func (s *Service) PostAnnouncement(title, body, author string, pinned bool) models.Announcement {
	a := models.Announcement{
		ID:       models.NewID(),
		Title:    title,
		Body:     body,
		Author:   author,
		PostedAt: models.Timestamp(),
		Pinned:   pinned,
	}
	store.Apply(s.store, "announcements", func(prev []models.Announcement) []models.Announcement {
		return appendCopy(prev, a)
	})
	return a
}

// ChecklistItems возвращает пункты ежедневного чек-листа
func (s *Service) ChecklistItems() []models.ChecklistItem {
	return store.Value[[]models.ChecklistItem](s.store, "dailyChecklist")
}

// AddChecklistItem добавляет пункт в чек-лист
func (s *Service) AddChecklistItem(label string) models.ChecklistItem {
	item := models.ChecklistItem{
		ID:    models.NewID(),
		Label: label,
	}
	store.Apply(s.store, "dailyChecklist", func(prev []models.ChecklistItem) []models.ChecklistItem {
		return appendCopy(prev, item)
	})
	return item
}

// SetChecklistDone отмечает пункт выполненным или снимает отметку
func (s *Service) SetChecklistDone(id, completedBy string, done bool) error {
	found := false
	store.Apply(s.store, "dailyChecklist", func(prev []models.ChecklistItem) []models.ChecklistItem {
		next := make([]models.ChecklistItem, len(prev))
		copy(next, prev)
		for i := range next {
			if next[i].ID != id {
				continue
			}
			found = true
			next[i].Done = done
			if done {
				next[i].CompletedBy = completedBy
				next[i].CompletedAt = models.Timestamp()
			} else {
				next[i].CompletedBy = ""
				next[i].CompletedAt = ""
			}
		}
		return next
	})
	if !found {
		return fmt.Errorf("checklist item %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

// EquipmentList возвращает список техники
func (s *Service) EquipmentList() []models.Equipment {
	return store.Value[[]models.Equipment](s.store, "equipment")
}

// AddEquipment регистрирует новую единицу техники
func (s *Service) AddEquipment(name, model, serial string) models.Equipment {
	e := models.Equipment{
		ID:          models.NewID(),
		Name:        name,
		Model:       model,
		Serial:      serial,
		Status:      "operational",
		PurchasedOn: models.DateOnly(),
	}
	store.Apply(s.store, "equipment", func(prev []models.Equipment) []models.Equipment {
		return appendCopy(prev, e)
	})
	return e
}

// SetEquipmentStatus меняет состояние единицы техники
func (s *Service) SetEquipmentStatus(id, status string) error {
	found := false
	store.Apply(s.store, "equipment", func(prev []models.Equipment) []models.Equipment {
		next := make([]models.Equipment, len(prev))
		copy(next, prev)
		for i := range next {
			if next[i].ID == id {
				found = true
				next[i].Status = status
			}
		}
		return next
	})
	if !found {
		return fmt.Errorf("equipment %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

// RepairRequests возвращает заявки на ремонт
func (s *Service) RepairRequests() []models.RepairRequest {
	return store.Value[[]models.RepairRequest](s.store, "repairRequests")
}

// ReportRepair создает заявку на ремонт
func (s *Service) ReportRepair(equipmentID, description, reportedBy string) models.RepairRequest {
	r := models.RepairRequest{
		ID:          models.NewID(),
		EquipmentID: equipmentID,
		Description: description,
		ReportedBy:  reportedBy,
		ReportedAt:  models.Timestamp(),
	}
	store.Apply(s.store, "repairRequests", func(prev []models.RepairRequest) []models.RepairRequest {
		return appendCopy(prev, r)
	})
	return r
}

// ResolveRepair закрывает заявку на ремонт
func (s *Service) ResolveRepair(id string) error {
	found := false
	store.Apply(s.store, "repairRequests", func(prev []models.RepairRequest) []models.RepairRequest {
		next := make([]models.RepairRequest, len(prev))
		copy(next, prev)
		for i := range next {
			if next[i].ID == id {
				found = true
				next[i].Resolved = true
			}
		}
		return next
	})
	if !found {
		return fmt.Errorf("repair request %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

// MileageLog возвращает журнал пробега
func (s *Service) MileageLog() []models.MileageEntry {
	return store.Value[[]models.MileageEntry](s.store, "mileageLog")
}

// LogMileage добавляет запись в журнал пробега
func (s *Service) LogMileage(date, driver, vehicle string, miles float64, purpose string) models.MileageEntry {
	if date == "" {
		date = models.DateOnly()
	}
	m := models.MileageEntry{
		ID:      models.NewID(),
		Date:    date,
		Driver:  driver,
		Vehicle: vehicle,
		Miles:   miles,
		Purpose: purpose,
	}
	store.Apply(s.store, "mileageLog", func(prev []models.MileageEntry) []models.MileageEntry {
		return appendCopy(prev, m)
	})
	return m
}

// MarkMileageExported помечает записи выгруженными во внешнюю систему
func (s *Service) MarkMileageExported(ids []string) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	store.Apply(s.store, "mileageLog", func(prev []models.MileageEntry) []models.MileageEntry {
		next := make([]models.MileageEntry, len(prev))
		copy(next, prev)
		for i := range next {
			if _, ok := idSet[next[i].ID]; ok {
				next[i].Exported = true
			}
		}
		return next
	})
}

// Playbooks возвращает инструкции
func (s *Service) Playbooks() []models.Playbook {
	return store.Value[[]models.Playbook](s.store, "playbooks")
}

// Suggestions возвращает предложения сотрудников
func (s *Service) Suggestions() []models.Suggestion {
	return store.Value[[]models.Suggestion](s.store, "suggestions")
}

// AddSuggestion добавляет предложение
func (s *Service) AddSuggestion(text, submittedBy string) models.Suggestion {
	sg := models.Suggestion{
		ID:          models.NewID(),
		Text:        text,
		SubmittedBy: submittedBy,
		SubmittedAt: models.Timestamp(),
	}
	store.Apply(s.store, "suggestions", func(prev []models.Suggestion) []models.Suggestion {
		return appendCopy(prev, sg)
	})
	return sg
}

// TimeOffRequests возвращает заявки на отгулы
func (s *Service) TimeOffRequests() []models.TimeOffRequest {
	return store.Value[[]models.TimeOffRequest](s.store, "timeOffRequests")
}

// RequestTimeOff создает заявку на отгул
func (s *Service) RequestTimeOff(employee, startDate, endDate, reason string) models.TimeOffRequest {
	r := models.TimeOffRequest{
		ID:        models.NewID(),
		Employee:  employee,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
		Status:    "pending",
	}
	store.Apply(s.store, "timeOffRequests", func(prev []models.TimeOffRequest) []models.TimeOffRequest {
		return appendCopy(prev, r)
	})
	return r
}

// SetTimeOffStatus меняет статус заявки ("approved", "denied")
func (s *Service) SetTimeOffStatus(id, status string) error {
	found := false
	store.Apply(s.store, "timeOffRequests", func(prev []models.TimeOffRequest) []models.TimeOffRequest {
		next := make([]models.TimeOffRequest, len(prev))
		copy(next, prev)
		for i := range next {
			if next[i].ID == id {
				found = true
				next[i].Status = status
			}
		}
		return next
	})
	if !found {
		return fmt.Errorf("time off request %s: %w", id, ErrRecordNotFound)
	}
	return nil
}

// BuybackBoard возвращает доску задач
func (s *Service) BuybackBoard() models.BuybackBoard {
	return store.Value[models.BuybackBoard](s.store, "buybackBoard")
}

// AddBuybackTask добавляет карточку в колонку доски
func (s *Service) AddBuybackTask(column, title, details string) (models.BuybackTask, error) {
	task := models.BuybackTask{
		ID:        models.NewID(),
		Title:     title,
		Details:   details,
		CreatedAt: models.Timestamp(),
	}
	var missing error
	store.Apply(s.store, "buybackBoard", func(prev models.BuybackBoard) models.BuybackBoard {
		if _, ok := prev.Columns[column]; !ok {
			missing = fmt.Errorf("board column %q: %w", column, ErrRecordNotFound)
			return prev
		}
		next := copyBoard(prev)
		next.Columns[column] = append(next.Columns[column], task)
		return next
	})
	if missing != nil {
		return models.BuybackTask{}, missing
	}
	return task, nil
}

// MoveBuybackTask переносит карточку в другую колонку
func (s *Service) MoveBuybackTask(id, toColumn string) error {
	var opErr error
	store.Apply(s.store, "buybackBoard", func(prev models.BuybackBoard) models.BuybackBoard {
		if _, ok := prev.Columns[toColumn]; !ok {
			opErr = fmt.Errorf("board column %q: %w", toColumn, ErrRecordNotFound)
			return prev
		}

		var task models.BuybackTask
		found := false
		next := copyBoard(prev)
		for col, tasks := range next.Columns {
			for i, t := range tasks {
				if t.ID == id {
					task = t
					found = true
					next.Columns[col] = append(tasks[:i:i], tasks[i+1:]...)
				}
			}
		}
		if !found {
			opErr = fmt.Errorf("buyback task %s: %w", id, ErrRecordNotFound)
			return prev
		}

		next.Columns[toColumn] = append(next.Columns[toColumn], task)
		return next
	})
	return opErr
}

// TrainingModules возвращает обучающие материалы
func (s *Service) TrainingModules() []models.TrainingModule {
	return store.Value[[]models.TrainingModule](s.store, "trainingModules")
}

// appendCopy возвращает новый slice с добавленным элементом, не трогая prev
func appendCopy[T any](prev []T, item T) []T {
	next := make([]T, 0, len(prev)+1)
	next = append(next, prev...)
	return append(next, item)
}

// copyBoard делает неглубокую копию доски с собственной картой колонок
func copyBoard(b models.BuybackBoard) models.BuybackBoard {
	next := models.BuybackBoard{
		Order:   append([]string(nil), b.Order...),
		Columns: make(map[string][]models.BuybackTask, len(b.Columns)),
	}
	for col, tasks := range b.Columns {
		next.Columns[col] = append([]models.BuybackTask(nil), tasks...)
	}
	return next
}
