package repository

import (
	"context"
	"errors"
)

// Keys of the persisted collections. Each holds one JSON value and is read
// and written independently; there is no cross-key transaction.
const (
	KeyDocuments    = "documents"
	KeyAppointments = "appointments"
	KeyProfile      = "profile"
	KeySignature    = "signature"
)

// ErrEmptyKey is returned when a blank key reaches a backend.
var ErrEmptyKey = errors.New("key is required")

// KeyValueRepository is durable key-value storage for whole serialized
// collections. Implementations must make Put atomic per key: a reader never
// observes a partially written value.
type KeyValueRepository interface {
	// Get returns the stored value. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
