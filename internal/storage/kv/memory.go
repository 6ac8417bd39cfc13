package kv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

// минимальный размер, с которым работает freecache
const minMemorySize = 512 * 1024

// Memory хранилище в памяти процесса.
// Записи кеша моделей (agentpulse:{id}:cache:*) живут в freecache фиксированного размера:
// при переполнении старые записи вытесняются, и одна запись не может быть больше
// 1/1024 общего размера. Остальные ключи (профиль, лиды, тема, реестр устройств,
// состояние шлюза) хранятся в обычной карте и не вытесняются.
type Memory struct {
	mu    sync.Mutex
	cache *freecache.Cache
	state map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (it memoryItem) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !now.Before(it.expiresAt)
}

// NewMemory создает хранилище с кешем размером sizeMB мегабайт.
func NewMemory(sizeMB int) *Memory {
	size := sizeMB * 1024 * 1024
	if size < minMemorySize {
		size = minMemorySize
	}
	return &Memory{
		cache: freecache.NewCache(size),
		state: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// isCacheKey сообщает, относится ли ключ к кешу моделей устройства.
func isCacheKey(key string) bool {
	rest, ok := strings.CutPrefix(key, RootPrefix)
	if !ok {
		return false
	}
	_, tail, ok := strings.Cut(rest, ":")
	return ok && strings.HasPrefix(tail, CachePrefix)
}

// Get читает значение по ключу.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(key)
}

// Set записывает значение. Срок жизни записей кеша округляется вверх до секунд.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(key, value, ttl)
}

// Delete удаляет ключи.
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		if isCacheKey(k) {
			m.cache.Del([]byte(k))
			continue
		}
		delete(m.state, k)
	}
	return nil
}

// Keys отбирает ключи с префиксом из обеих частей хранилища.
func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	now := m.now()
	for k, it := range m.state {
		if it.expired(now) {
			delete(m.state, k)
			continue
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	iter := m.cache.NewIterator()
	for entry := iter.Next(); entry != nil; entry = iter.Next() {
		k := string(entry.Key)
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// CompareAndSwap условная запись; атомарность обеспечивает мьютекс хранилища.
func (m *Memory) CompareAndSwap(_ context.Context, key string, prev, next []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, err := m.get(key)
	exists := true
	if errors.Is(err, ErrNotFound) {
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
	return m.set(key, next, ttl)
}

// CompareAndDelete удаляет ключ, только если его значение равно prev.
func (m *Memory) CompareAndDelete(_ context.Context, key string, prev []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, err := m.get(key)
	if errors.Is(err, ErrNotFound) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(cur, prev) {
		return ErrConflict
	}
	if isCacheKey(key) {
		m.cache.Del([]byte(key))
		return nil
	}
	delete(m.state, key)
	return nil
}

func (m *Memory) get(key string) ([]byte, error) {
	if isCacheKey(key) {
		val, err := m.cache.Get([]byte(key))
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	}

	it, ok := m.state[key]
	if !ok {
		return nil, ErrNotFound
	}
	if it.expired(m.now()) {
		delete(m.state, key)
		return nil, ErrNotFound
	}
	return bytes.Clone(it.value), nil
}

func (m *Memory) set(key string, value []byte, ttl time.Duration) error {
	if isCacheKey(key) {
		return m.cache.Set([]byte(key), value, expireSeconds(ttl))
	}
	it := memoryItem{value: bytes.Clone(value)}
	if ttl > 0 {
		it.expiresAt = m.now().Add(ttl)
	}
	m.state[key] = it
	return nil
}

func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	sec := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		sec++
	}
	return sec
}

var _ Store = (*Memory)(nil)
