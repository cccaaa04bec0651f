package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"txsignals/internal/config"
	"txsignals/internal/dispatch"
	"txsignals/internal/notify"
	"txsignals/internal/stats"
	"txsignals/internal/store"
	"txsignals/internal/user"
)

// buildRecorder creates the stats recorder selected by the config.
// The returned cleanup closes any underlying client and is never nil.
func buildRecorder(cfg config.Config) (stats.Recorder, func(), error) {
	switch cfg.Stats.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Stats.Redis.Addr,
			Password: cfg.Stats.Redis.Password,
			DB:       cfg.Stats.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			rdb.Close()
			return nil, func() {}, fmt.Errorf("redis stats ping: %w", err)
		}

		return stats.NewRedisRecorder(rdb), func() { _ = rdb.Close() }, nil

	default:
		return stats.NewMemory(), func() {}, nil
	}
}

// buildService wires the hook registry, notifier, and user service on top
// of an open store.
func buildService(cfg config.Config, st *store.Store, recorder stats.Recorder, logger *slog.Logger) *user.Service {
	registry := dispatch.NewRegistry(logger)
	notifier := notify.New(logger,
		notify.WithDelay(cfg.Notifier.Delay.Std()),
		notify.WithStats(recorder),
	)
	registry.MustRegister(dispatch.KindUser, "creation-notifier", notifier.Notify)

	return user.NewService(st, registry, logger, user.WithStats(recorder))
}
