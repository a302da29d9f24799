// Package logging настраивает глобальный slog логгер приложения.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel переводит строку из конфигурации в slog.Level. Неизвестное значение даёт info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создаёт логгер: JSON в production, текст в остальных окружениях.
func New(w io.Writer, level string, production bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Configure создаёт логгер в stdout и делает его логгером по умолчанию.
func Configure(level string, production bool) *slog.Logger {
	logger := New(os.Stdout, level, production)
	slog.SetDefault(logger)
	return logger
}
