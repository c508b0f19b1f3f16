// Package collections implements the bounded, newest-first record
// collections persisted in the local key-value store. Each collection
// lives under a single key as one JSON array; inserts persist the whole
// slice back synchronously.
package collections

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sainvoice/invoicecore/logging"
	"github.com/sainvoice/invoicecore/storage"
)

// Config describes one collection: its storage key, capacity, and how
// records get identity.
type Config[T any] struct {
	// Key is the storage key the whole collection is serialized under.
	Key string

	// Capacity bounds the collection; inserts beyond it evict the oldest.
	Capacity int

	// ID extracts a record's assigned id.
	ID func(T) string

	// Stamp returns the record with a fresh id and timestamp applied.
	Stamp func(rec T, id string, now time.Time) T

	// KeyOf returns the dedup key for a record. Every key value matches,
	// including "": two records with empty keys replace each other. Nil
	// disables dedup for the whole collection.
	KeyOf func(T) string
}

// Store is a capped, ordered, locally persisted collection of records.
// Ordering is newest-first. The in-memory cache is the source of truth
// for reads; every mutation writes the full slice through to storage.
type Store[T any] struct {
	kv  storage.KV
	cfg Config[T]
	log logging.Logger
	now func() time.Time

	mu    sync.Mutex
	cache []T
}

// NewStore builds a store over kv with the given configuration.
func NewStore[T any](kv storage.KV, cfg Config[T], log logging.Logger) *Store[T] {
	return &Store[T]{kv: kv, cfg: cfg, log: log, now: time.Now}
}

// Load reads the collection from storage once, at startup. Missing,
// unreadable or malformed data is treated as an empty collection and is
// never fatal.
func (s *Store[T]) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil

	data, ok, err := s.kv.Get(ctx, s.cfg.Key)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored collection, starting empty", "key", s.cfg.Key, "err", err)
		return
	}
	if !ok {
		return
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn(ctx, "discarding malformed stored collection", "key", s.cfg.Key, "err", err)
		return
	}
	s.cache = records
}

// Insert stamps rec with a fresh id and timestamp and stores it.
//
// When the collection deduplicates and an existing entry shares rec's
// dedup key, the new record replaces that entry at its existing index,
// keeping the original id. Otherwise rec is prepended as the newest entry
// and the collection is truncated to capacity, silently dropping the
// oldest. The resulting slice is persisted before Insert returns.
func (s *Store[T]) Insert(ctx context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamped := s.cfg.Stamp(rec, uuid.NewString(), s.now())

	if idx := s.matchIndex(stamped); idx >= 0 {
		// replace in place, preserving the original id and position
		stamped = s.cfg.Stamp(stamped, s.cfg.ID(s.cache[idx]), s.now())
		updated := make([]T, len(s.cache))
		copy(updated, s.cache)
		updated[idx] = stamped
		return stamped, s.persist(ctx, updated)
	}

	updated := append([]T{stamped}, s.cache...)
	if len(updated) > s.cfg.Capacity {
		updated = updated[:s.cfg.Capacity]
	}
	return stamped, s.persist(ctx, updated)
}

// Remove deletes the record with the given id and persists the rest.
// Removing an unknown id is a no-op, not an error.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]T, 0, len(s.cache))
	found := false
	for _, rec := range s.cache {
		if s.cfg.ID(rec) == id {
			found = true
			continue
		}
		updated = append(updated, rec)
	}
	if !found {
		return nil
	}
	return s.persist(ctx, updated)
}

// Get looks id up in the in-memory cache.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.cache {
		if s.cfg.ID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// All returns the collection newest-first.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.cache))
	copy(out, s.cache)
	return out
}

// Len reports the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

func (s *Store[T]) matchIndex(rec T) int {
	if s.cfg.KeyOf == nil {
		return -1
	}
	key := s.cfg.KeyOf(rec)
	for i, existing := range s.cache {
		if s.cfg.KeyOf(existing) == key {
			return i
		}
	}
	return -1
}

// persist writes updated through to storage and, on success, makes it the
// cache. A failed write leaves the cache at its previous state.
func (s *Store[T]) persist(ctx context.Context, updated []T) error {
	data, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.cfg.Key, data); err != nil {
		return err
	}
	s.cache = updated
	return nil
}
