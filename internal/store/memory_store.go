package store

import (
	"maps"
	"sync"

	"peerid/internal/domain"
)

// MemoryBackend keeps identities for the lifetime of the process only.
type MemoryBackend struct {
	mu    sync.Mutex
	slots map[domain.Slot]domain.Identity
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[domain.Slot]domain.Identity)}
}

// Load returns a copy of the stored slots.
func (b *MemoryBackend) Load() (map[domain.Slot]domain.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.slots), nil
}

// Save replaces the stored slots.
func (b *MemoryBackend) Save(slots map[domain.Slot]domain.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots = maps.Clone(slots)
	return nil
}

var _ domain.IdentityBackend = (*MemoryBackend)(nil)
