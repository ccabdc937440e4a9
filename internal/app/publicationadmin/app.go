// Package publicationadmin собирает зависимости административного бэкенда
// и запускает HTTP-сервер.
package publicationadmin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/publication-admin/internal/cache"
	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/migrations"
	"github.com/magabrotheeeer/publication-admin/internal/notify"
	"github.com/magabrotheeeer/publication-admin/internal/services/access"
	"github.com/magabrotheeeer/publication-admin/internal/services/articles"
	authservice "github.com/magabrotheeeer/publication-admin/internal/services/auth"
	"github.com/magabrotheeeer/publication-admin/internal/services/catalog"
	"github.com/magabrotheeeer/publication-admin/internal/services/content"
	"github.com/magabrotheeeer/publication-admin/internal/services/importer"
	"github.com/magabrotheeeer/publication-admin/internal/services/issues"
	"github.com/magabrotheeeer/publication-admin/internal/services/news"
	"github.com/magabrotheeeer/publication-admin/internal/services/users"
	"github.com/magabrotheeeer/publication-admin/internal/storage/files"
	"github.com/magabrotheeeer/publication-admin/internal/storage/repository"
)

// App держит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	closers []func() error
}

// New подключает базу и применяет миграции, затем поднимает необязательные
// Redis и RabbitMQ, создаёт каталоги серий и администратора по умолчанию
// и собирает роутер. При ошибке уже открытые ресурсы закрываются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "publicationadmin.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := &App{logger: logger, db: db}

	if err = migrations.Run(db.DB.DB, cfg.MigrationsPath); err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lookupCache := a.initCache(ctx, cfg.RedisConnection)
	publisher := a.initPublisher(cfg.RabbitMQ)

	store := files.New(cfg.StorageRoot)
	for _, s := range cfg.NewsSeries {
		if err = store.EnsureDir(s.Dir); err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	created, err := authService.EnsureBootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if created {
		logger.Info("bootstrap admin created", slog.String("username", cfg.AdminUsername))
	}

	services := Services{
		Auth:     authService,
		Users:    users.NewService(db, publisher, logger),
		Access:   access.NewService(db, publisher, logger),
		Importer: importer.NewService(db, lookupCache, publisher, logger),
		News:     news.NewService(db, store, cfg.Publishing, logger),
		Issues:   issues.NewService(db, cfg.Publishing),
		Articles: articles.NewService(db),
		Content:  content.NewService(db, lookupCache, cfg.CacheTTL, logger),
		Catalog:  catalog.NewService(db, lookupCache, cfg.CacheTTL, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, RouteDeps{
		Services:     services,
		Tokens:       jwtMaker,
		LoginLimiter: rate.NewLimiter(rate.Limit(cfg.LoginRate.RPS), cfg.LoginRate.Burst),
		DB:           db.DB,
		Publishing:   cfg.Publishing,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// initCache подключает Redis. Без адреса или при недоступном Redis справочники
// читаются напрямую из базы.
func (a *App) initCache(ctx context.Context, cfg config.RedisConnection) cache.Cache {
	if cfg.AddressRedis == "" {
		a.logger.Info("redis address is empty, lookup cache disabled")
		return cache.Nop{}
	}
	c, err := cache.InitServer(ctx, cfg)
	if err != nil {
		a.logger.Warn("redis is unavailable, lookup cache disabled", sl.Err(err))
		return cache.Nop{}
	}
	a.closers = append(a.closers, c.Close)
	return c
}

// initPublisher подключает RabbitMQ. Без URL события не публикуются.
func (a *App) initPublisher(cfg config.RabbitMQ) notify.Publisher {
	if cfg.RabbitMQURL == "" {
		a.logger.Info("rabbitmq url is empty, domain events disabled")
		return notify.Nop{}
	}
	conn, err := notify.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		a.logger.Warn("rabbitmq is unavailable, domain events disabled", sl.Err(err))
		return notify.Nop{}
	}
	p, err := notify.NewAMQP(conn, cfg.RabbitMQExchange)
	if err != nil {
		_ = conn.Close()
		a.logger.Warn("failed to declare exchange, domain events disabled", sl.Err(err))
		return notify.Nop{}
	}
	a.closers = append(a.closers, p.Close)
	return p
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер
// и закрывает ресурсы.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
