// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель: упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках и идентификаторе устройства.
package sl

import (
	"log/slog"
	"os"
	"strings"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil возвращает пустую строку, чтобы логирование не паниковало.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Device возвращает атрибут с идентификатором устройства.
func Device(id string) slog.Attr {
	return slog.String("device_id", id)
}

// New создает текстовый логгер для окружения: local и dev пишут debug, остальные: info.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(env) {
	case "local", "dev", "test":
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
