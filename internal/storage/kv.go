package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Delete for a key that is not stored.
var ErrNotFound = errors.New("key not found")

// KV is a byte-valued key-value store.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

var (
	_ KV = (*MemoryStore)(nil)
	_ KV = (*SQLiteStore)(nil)
)

// MemoryStore is an in-process key-value store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (store *MemoryStore) Get(key string) ([]byte, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (store *MemoryStore) Set(key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = append([]byte(nil), value...)
	return nil
}

func (store *MemoryStore) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.values[key]; !ok {
		return ErrNotFound
	}
	delete(store.values, key)
	return nil
}

func (store *MemoryStore) Close() error {
	return nil
}
