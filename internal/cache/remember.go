package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
)

// Remember возвращает значение из кэша или загружает его через load и кладёт в кэш.
// Ошибки кэша только логируются: источником истины остаётся load.
func Remember[T any](ctx context.Context, c Cache, log *slog.Logger, key string, ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	val, err := load(ctx)
	if err != nil {
		return val, err
	}
	if err := c.Set(ctx, key, val, ttl); err != nil {
		log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
	return val, nil
}
