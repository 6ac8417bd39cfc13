package kv

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/agentpulse/internal/metrics"
)

// Instrumented считает попадания и промахи чтений из вложенного хранилища.
type Instrumented struct {
	Store
	metrics metrics.Recorder
}

// NewInstrumented оборачивает store.
func NewInstrumented(store Store, m metrics.Recorder) *Instrumented {
	return &Instrumented{Store: store, metrics: m}
}

// Get читает значение и записывает результат в метрики.
func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := i.Store.Get(ctx, key)
	switch {
	case err == nil:
		i.metrics.IncStoreLookups(true)
	case errors.Is(err, ErrNotFound):
		i.metrics.IncStoreLookups(false)
	}
	return val, err
}

var _ Store = (*Instrumented)(nil)
