package session

import (
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory Store. Entries past their expiry read as absent.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[name]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !NowTimeFunc().Before(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

func (m *MemoryStore) Set(name, value string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = memoryEntry{value: value, expiresAt: expiresAt}
}

func (m *MemoryStore) Clear(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, name)
}

// Len returns the number of stored entries, expired or not
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
