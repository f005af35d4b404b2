package store

import (
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used in tests and anywhere a throwaway
// cache is wanted. Paths it returns are synthetic ("mem://<key>.<format>")
// and resolvable only through Bytes.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   Stats
}

type memoryEntry struct {
	data   []byte
	format string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Lookup reports whether key has an entry.
func (ms *MemoryStore) Lookup(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.stats.LastAccess = time.Now()

	entry, ok := ms.entries[key]
	if !ok {
		ms.stats.Misses++
		return "", false
	}

	ms.stats.Hits++
	ms.stats.BytesOut += int64(len(entry.data))
	return "mem://" + key + "." + entry.format, true
}

// Store copies audio into the map.
func (ms *MemoryStore) Store(key string, audio []byte, format string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !validFormat(format) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Entries are immutable: the first write wins and repeats are no-ops.
	if existing, ok := ms.entries[key]; ok {
		return "mem://" + key + "." + existing.format, nil
	}

	data := make([]byte, len(audio))
	copy(data, audio)
	ms.entries[key] = memoryEntry{data: data, format: format}
	ms.stats.Writes++

	return "mem://" + key + "." + format, nil
}

// Stats returns a copy of the store counters.
func (ms *MemoryStore) Stats() Stats {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.stats
}

// Bytes returns the stored audio for key, for test assertions.
func (ms *MemoryStore) Bytes(key string) ([]byte, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, ok := ms.entries[key]
	if !ok {
		return nil, false
	}
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, true
}

// Len returns the number of entries.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.entries)
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
