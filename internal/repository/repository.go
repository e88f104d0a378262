// Package repository contains the key-value persistence abstraction.
// Backends live in subpackages (memory, postgres, redis).
package repository

import "context"

// Namespaced prefixes every key before handing it to the wrapped backend,
// so several deployments can share one database or Redis instance.
type Namespaced struct {
	prefix string
	next   KeyValueRepository
}

var _ KeyValueRepository = (*Namespaced)(nil)

// WithNamespace wraps next so that key "documents" is stored as prefix+"documents".
func WithNamespace(next KeyValueRepository, prefix string) *Namespaced {
	return &Namespaced{prefix: prefix, next: next}
}

func (n *Namespaced) key(k string) (string, error) {
	if k == "" {
		return "", ErrEmptyKey
	}
	return n.prefix + k, nil
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := n.key(key)
	if err != nil {
		return nil, false, err
	}
	return n.next.Get(ctx, k)
}

func (n *Namespaced) Put(ctx context.Context, key string, value []byte) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.next.Put(ctx, k, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.next.Delete(ctx, k)
}

func (n *Namespaced) Ping(ctx context.Context) error {
	return n.next.Ping(ctx)
}
