// Package kv описывает узкий интерфейс хранилища ключ-значение, которым сервис
// заменяет local storage браузера, и его реализации: redis и ограниченный кеш в памяти.
package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound ключ отсутствует или его срок жизни истёк.
	ErrNotFound = errors.New("kv: key not found")
	// ErrConflict значение изменилось между чтением и записью.
	ErrConflict = errors.New("kv: value changed concurrently")
)

// Store хранилище ключ-значение. ttl == 0 означает запись без срока жизни.
type Store interface {
	// Get возвращает значение по ключу или ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set записывает значение, безусловно перезаписывая предыдущее.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete удаляет ключи; отсутствующие ключи не считаются ошибкой.
	Delete(ctx context.Context, keys ...string) error
	// Keys возвращает все ключи с заданным префиксом.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// CompareAndSwap записывает next, только если текущее значение равно prev.
	// prev == nil означает, что ключ должен отсутствовать. Иначе ErrConflict.
	CompareAndSwap(ctx context.Context, key string, prev, next []byte, ttl time.Duration) error
	// CompareAndDelete удаляет ключ, только если текущее значение равно prev. Иначе ErrConflict.
	CompareAndDelete(ctx context.Context, key string, prev []byte) error
}
