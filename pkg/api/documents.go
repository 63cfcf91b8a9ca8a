package api

import "encoding/json"

// DocumentRow представляет одну строку таблицы документов: ключ и JSON значение.
// Значение непрозрачно для сервера - он хранит и отдает его как есть.
type DocumentRow struct {
	Key   string          `json:"key"`   // уникальный ключ коллекции (например "greenteam-equipment")
	Value json.RawMessage `json:"value"` // полное JSON значение коллекции
}

// ListDocumentsResponse представляет ответ на чтение всех строк
type ListDocumentsResponse struct {
	Documents []DocumentRow `json:"documents"`
}

// UpsertDocumentRequest представляет запрос на запись значения по ключу.
// Значение полностью заменяет предыдущее - частичных обновлений нет.
type UpsertDocumentRequest struct {
	Value json.RawMessage `json:"value"`
}

// UpsertDocumentResponse представляет ответ на успешный upsert
type UpsertDocumentResponse struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}
