// Package storage provides the persistent key-value namespace the stores
// write their snapshots to. Each store serializes its entire state under a
// single well-known key on every mutation and rehydrates it at startup.
package storage

import (
	"context"
	"errors"
)

// Well-known namespace keys.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyBlogs       = "blogs"
)

// ErrKeyNotFound is returned by Get when the key has no value. Callers treat
// absent and malformed values the same way: fall back to the seed state.
var ErrKeyNotFound = errors.New("storage: key not found")

// Namespace is a process-wide key-value blob store.
//
// Set overwrites the whole value (snapshot persistence, no deltas) and bumps
// the key's generation counter. Generation lets a store detect that an
// external writer touched the key since it last wrote; the namespace itself
// does no locking across processes, so the last writer still wins.
type Namespace interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Generation(ctx context.Context, key string) (int64, error)
}
