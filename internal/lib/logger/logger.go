// Package logger собирает корневой *slog.Logger приложения.
//
// В окружении local пишет текст уровня debug в stdout, в остальных
// окружениях JSON уровня info. Если в конфиге указан файл, записи
// дублируются в него с ротацией через lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"github.com/magabrotheeeer/publication-admin/internal/config"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

// New возвращает логгер и функцию закрытия файлового приёмника.
func New(env string, cfg config.Log) (*slog.Logger, func() error) {
	var out io.Writer = os.Stdout
	closer := func() error { return nil }

	if cfg.File != "" {
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, sink)
		closer = sink.Close
	}

	return slog.New(handler(env, out)), closer
}

func handler(env string, out io.Writer) slog.Handler {
	switch env {
	case envLocal:
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envDev:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
}

// Discard логгер без вывода, для тестов.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
