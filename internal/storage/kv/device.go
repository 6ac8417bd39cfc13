package kv

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Ключи пространства устройства.
const (
	RootPrefix    = "agentpulse:"
	KeyProfile    = "profile"
	KeyLeads      = "leads"
	KeyTheme      = "theme"
	CachePrefix   = "cache:"
	devicesPrefix = RootPrefix + "devices:"
)

// идентификатор короче 8 символов не пересекается с реестром устройств
var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// ValidDeviceID проверяет формат идентификатора устройства.
func ValidDeviceID(id string) bool {
	return deviceIDPattern.MatchString(id)
}

// Device возвращает пространство ключей устройства agentpulse:{id}:.
func Device(store Store, deviceID string) *Namespace {
	return NewNamespace(store, RootPrefix+deviceID+":")
}

// RegisterDevice добавляет устройство в реестр, по которому работает планировщик.
func RegisterDevice(ctx context.Context, store Store, deviceID string) error {
	const op = "kv.RegisterDevice"
	if err := store.Set(ctx, devicesPrefix+deviceID, []byte(time.Now().UTC().Format(time.RFC3339)), 0); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ForgetDevice удаляет устройство из реестра.
func ForgetDevice(ctx context.Context, store Store, deviceID string) error {
	const op = "kv.ForgetDevice"
	if err := store.Delete(ctx, devicesPrefix+deviceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Devices возвращает идентификаторы всех зарегистрированных устройств.
func Devices(ctx context.Context, store Store) ([]string, error) {
	const op = "kv.Devices"
	keys, err := store.Keys(ctx, devicesPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, devicesPrefix))
	}
	return ids, nil
}
