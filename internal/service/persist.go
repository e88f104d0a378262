package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"sahaya/internal/repository"
)

var tracer = otel.Tracer("sahaya/internal/service")

// restoreValue decodes the value stored under key into dst.
// An absent key leaves dst untouched; an undecodable value resets dst to its
// zero value and is logged as ErrPersistenceCorrupt. Only backend read errors
// are returned.
func restoreValue[T any](ctx context.Context, kv repository.KeyValueRepository, key string, log *zap.Logger, dst *T) error {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("restore %s: %w", key, err)
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var zero T
		*dst = zero
		log.Warn("persisted value discarded",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Error(fmt.Errorf("%w: %v", ErrPersistenceCorrupt, err)),
		)
	}
	return nil
}

// persistValue writes the whole value under key.
func persistValue(ctx context.Context, kv repository.KeyValueRepository, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistenceFailed, key, err)
	}
	if err := kv.Put(ctx, key, b); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrPersistenceFailed, key, err)
	}
	return nil
}
