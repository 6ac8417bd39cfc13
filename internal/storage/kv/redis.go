package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/agentpulse/internal/config"
)

// Redis реализация Store поверх redis.
type Redis struct {
	Db *redis.Client
}

// NewRedis подключается к redis и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "kv.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db}, nil
}

// Get читает значение по ключу.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "kv.Redis.Get"
	val, err := r.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return val, nil
}

// Set записывает значение; redis сам удалит ключ по истечении ttl.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	const op = "kv.Redis.Set"
	if err := r.Db.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключи.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	const op = "kv.Redis.Delete"
	if len(keys) == 0 {
		return nil
	}
	if err := r.Db.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Keys перебирает ключи через SCAN, не блокируя сервер как KEYS.
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	const op = "kv.Redis.Keys"
	var (
		result []string
		cursor uint64
	)
	pattern := escapeGlob(prefix) + "*"
	for {
		keys, next, err := r.Db.Scan(ctx, cursor, pattern, 256).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return result, nil
}

// CompareAndSwap выполняет условную запись в транзакции WATCH/MULTI.
func (r *Redis) CompareAndSwap(ctx context.Context, key string, prev, next []byte, ttl time.Duration) error {
	const op = "kv.Redis.CompareAndSwap"

	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		exists := true
		if errors.Is(err, redis.Nil) {
			exists = false
		} else if err != nil {
			return err
		}

		if prev == nil && exists {
			return ErrConflict
		}
		if prev != nil && (!exists || !bytes.Equal(cur, prev)) {
			return ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	err := r.Db.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// CompareAndDelete удаляет ключ в транзакции WATCH/MULTI, если его значение равно prev.
func (r *Redis) CompareAndDelete(ctx context.Context, key string, prev []byte) error {
	const op = "kv.Redis.CompareAndDelete"

	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrConflict
		}
		if err != nil {
			return err
		}
		if !bytes.Equal(cur, prev) {
			return ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	err := r.Db.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Close закрывает соединение.
func (r *Redis) Close() error {
	return r.Db.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

var _ Store = (*Redis)(nil)
