package registry

import (
	"sync"
	"time"

	"peerid/internal/domain"
)

// Entry is one registered identity.
type Entry struct {
	Info      domain.Info `json:"info"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// memoryTable keeps registry entries keyed by public key.
type memoryTable struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func newMemoryTable() *memoryTable {
	return &memoryTable{entries: make(map[string]Entry)}
}

func (t *memoryTable) get(key string) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[key]
	return e, ok
}

// create stores info under key unless an entry already exists.
func (t *memoryTable) create(key string, info domain.Info, now time.Time) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[key]; ok {
		return Entry{}, false
	}
	e := Entry{Info: info, CreatedAt: now, UpdatedAt: now}
	t.entries[key] = e
	return e, true
}

// update replaces the info of an existing entry.
func (t *memoryTable) update(key string, info domain.Info, now time.Time) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return Entry{}, false
	}
	e.Info = info
	e.UpdatedAt = now
	t.entries[key] = e
	return e, true
}

func (t *memoryTable) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
