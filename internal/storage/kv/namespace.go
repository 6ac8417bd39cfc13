package kv

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Namespace ограничивает Store пространством ключей с общим префиксом.
// Все операции принимают ключи без префикса.
type Namespace struct {
	store  Store
	prefix string
}

// NewNamespace создает пространство ключей поверх store.
func NewNamespace(store Store, prefix string) *Namespace {
	return &Namespace{store: store, prefix: prefix}
}

// Prefix возвращает префикс пространства.
func (n *Namespace) Prefix() string {
	return n.prefix
}

// Sub создает вложенное пространство.
func (n *Namespace) Sub(prefix string) *Namespace {
	return &Namespace{store: n.store, prefix: n.prefix + prefix}
}

// Get читает значение по ключу внутри пространства.
func (n *Namespace) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

// Set записывает значение по ключу внутри пространства.
func (n *Namespace) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return n.store.Set(ctx, n.prefix+key, value, ttl)
}

// Delete удаляет ключи внутри пространства.
func (n *Namespace) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, n.prefix+k)
	}
	return n.store.Delete(ctx, full...)
}

// Keys возвращает ключи пространства (без префикса), начинающиеся с prefix.
func (n *Namespace) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := n.store.Keys(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, n.prefix)
	}
	return keys, nil
}

// CompareAndSwap условная запись внутри пространства.
func (n *Namespace) CompareAndSwap(ctx context.Context, key string, prev, next []byte, ttl time.Duration) error {
	return n.store.CompareAndSwap(ctx, n.prefix+key, prev, next, ttl)
}

// CompareAndDelete условное удаление внутри пространства.
func (n *Namespace) CompareAndDelete(ctx context.Context, key string, prev []byte) error {
	return n.store.CompareAndDelete(ctx, n.prefix+key, prev)
}

// Clear удаляет все ключи пространства.
func (n *Namespace) Clear(ctx context.Context) error {
	const op = "kv.Namespace.Clear"

	keys, err := n.store.Keys(ctx, n.prefix)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := n.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var _ Store = (*Namespace)(nil)
