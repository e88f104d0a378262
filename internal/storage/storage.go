// Package storage holds the byte content of vault documents. Only object
// keys are persisted alongside document metadata.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound is returned by backends that can tell a missing key apart.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions describes an upload. Size is the declared byte count,
// or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what a backend knows about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the object store behind the vault. Get and PresignGet return
// ErrObjectNotFound for unknown keys; Delete of an unknown key succeeds.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a download URL valid for expiry. Backends without
	// URL signing return a data URI.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
