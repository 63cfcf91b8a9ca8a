package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/greenteam/opsboard/pkg/api"
)

// DocumentLister - то единственное, что загрузчику нужно от сервера:
// прочитать все строки таблицы документов за один вызов.
type DocumentLister interface {
	ListDocuments(ctx context.Context) ([]api.DocumentRow, error)
}

// Load выполняет один bootstrap-запрос: читает все строки удаленного
// хранилища и сворачивает их в карту ключ → сырое JSON значение.
// Сам не ретраит и не кеширует частичные результаты - идемпотентен,
// повторный вызов безопасен; retry-кнопка на совести вызывающего.
//
// Ошибка bootstrap - единственный случай, когда отказ показывают
// пользователю: рисовать пустое приложение поверх недогруженных данных
// значит маскировать потерю данных под "пустые списки".
func Load(ctx context.Context, client DocumentLister, logger *slog.Logger) (map[string]json.RawMessage, error) {
	rows, err := client.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	docs := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		docs[row.Key] = row.Value
	}

	logger.Debug("bootstrap completed", "documents", len(docs))
	return docs, nil
}
