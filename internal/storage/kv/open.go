package kv

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/agentpulse/internal/config"
)

// Open создает хранилище по настройке driver. Возвращаемая функция закрывает соединение.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	const op = "kv.Open"

	switch cfg.Driver {
	case config.StorageDriverRedis:
		r, err := NewRedis(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return r, r.Close, nil
	case config.StorageDriverMemory:
		return NewMemory(cfg.MemorySizeMB), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}
