// Package main административный бэкенд отраслевого издания: подписчики и их
// права, загрузка таблиц отчётов, публикация выпусков и содержимое сайта.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/publication-admin/internal/app/publicationadmin"
	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/lib/logger"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log, closeLog := logger.New(cfg.Env, cfg.Log)
	defer func() { _ = closeLog() }()

	log.Info("starting publication-admin", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := publicationadmin.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("publication-admin stopped gracefully")
}
