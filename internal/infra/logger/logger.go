package logger

import (
	"log/slog"
	"os"
)

// New собирает логгер пайплайна: в dev — текстовый и подробный,
// в остальных окружениях — JSON уровня info.
func New(env string) *slog.Logger {
	if env == "dev" {
		h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(h)
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h)
}
