// Package storage provides the string-keyed key-value store the persisted
// collections sit on: an in-memory backend for tests and a SQLite-backed
// one for the durable local database. Values are opaque JSON blobs; one
// key per collection or slot.
package storage

import "context"

// KV is a minimal local key-value store. Implementations are safe for use
// from the autosave timer goroutine alongside the UI thread.
type KV interface {
	// Get returns the value for key. The second result is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
