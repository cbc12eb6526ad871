package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/util/logx"
)

// Identities is the reactive slot -> identity store.
//
// Every write is applied in memory, written through to the backend while the
// write lock is held, and then delivered to the slot's subscribers.
// A backend failure does not roll back the in-memory value; it is reported
// to the writer as domain.ErrStoreUnavailable.
//
// A store whose backend could not be loaded is detached: it works in memory
// but never calls Save, so the unreadable durable copy is left intact.
type Identities struct {
	backend domain.IdentityBackend

	mu       sync.RWMutex
	slots    map[domain.Slot]domain.Identity
	detached error

	subsMu  sync.Mutex
	subs    map[domain.Slot]map[uint64]func(domain.Identity)
	nextSub uint64
}

// Open loads the identities kept by backend and materialises the default
// slot. A backend that cannot be read is logged and the store starts empty
// and detached from it, so startup never blocks on it and nothing overwrites
// what the backend holds.
func Open(backend domain.IdentityBackend, legacy domain.LegacyIdentitySource) (*Identities, error) {
	s := &Identities{
		backend: backend,
		slots:   make(map[domain.Slot]domain.Identity),
		subs:    make(map[domain.Slot]map[uint64]func(domain.Identity)),
	}

	loaded, err := backend.Load()
	if err != nil {
		s.detached = fmt.Errorf("%w: load failed: %w", domain.ErrStoreUnavailable, err)
		logx.Error(s.detached, "Loading identities failed, continuing in memory without saving")
		loaded = nil
	}
	for slot, id := range loaded {
		s.slots[slot] = pinned(id)
	}

	if _, _, err := s.Init(legacy); err != nil {
		return nil, err
	}
	return s, nil
}

// Init materialises the default slot, preferring the legacy identity over a
// fresh one. It is a no-op when the default slot is already populated and
// reports whether it created the identity it returns.
func (s *Identities) Init(legacy domain.LegacyIdentitySource) (domain.Identity, bool, error) {
	s.mu.Lock()
	if def, ok := s.slots[domain.DefaultSlot]; ok {
		s.mu.Unlock()
		return def, false, nil
	}

	source := "fresh"
	var def domain.Identity
	if legacy != nil {
		if id, ok := legacy.ImportLegacyIdentity(); ok {
			def, source = pinned(id), "legacy"
		}
	}
	if def.IsZero() {
		fresh, err := crypto.NewIdentity(domain.Profile{})
		if err != nil {
			s.mu.Unlock()
			return domain.Identity{}, false, err
		}
		def = fresh
	}

	s.slots[domain.DefaultSlot] = def
	err := s.persistLocked()
	s.mu.Unlock()

	logx.Info("Default identity materialised", "source", source, "public_key", def.PublicKey)
	if err != nil {
		logx.Warn("Default identity is not durable yet", "error", err.Error())
	}
	s.notify(domain.DefaultSlot, def)
	return def, true, nil
}

// Detached reports why the store does not write to its backend, or nil when
// it does.
func (s *Identities) Detached() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detached
}

// Get returns the identity in slot, if any.
func (s *Identities) Get(slot domain.Slot) (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slots[slot]
	return id, ok
}

// Set replaces the identity in slot.
func (s *Identities) Set(slot domain.Slot, id domain.Identity) error {
	return s.Update(slot, func(domain.Identity, bool) domain.Identity { return id })
}

// Update replaces the identity in slot with fn(prev, ok). fn runs under the
// store's write lock and must not call back into the store. A zero result is
// rejected with domain.ErrZeroIdentity and leaves the slot unchanged.
func (s *Identities) Update(
	slot domain.Slot,
	fn func(prev domain.Identity, ok bool) domain.Identity,
) error {
	s.mu.Lock()
	prev, ok := s.slots[slot]
	next := fn(prev, ok)
	if next.IsZero() {
		s.mu.Unlock()
		return fmt.Errorf("update slot %q: %w", slot, domain.ErrZeroIdentity)
	}
	next = pinned(next)
	s.slots[slot] = next
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(slot, next)
	return err
}

// SetIfAbsent stores id in slot only when the slot is empty.
func (s *Identities) SetIfAbsent(slot domain.Slot, id domain.Identity) (bool, error) {
	if id.IsZero() {
		return false, fmt.Errorf("set slot %q: %w", slot, domain.ErrZeroIdentity)
	}
	id = pinned(id)

	s.mu.Lock()
	if _, ok := s.slots[slot]; ok {
		s.mu.Unlock()
		return false, nil
	}
	s.slots[slot] = id
	err := s.persistLocked()
	s.mu.Unlock()

	s.notify(slot, id)
	return true, err
}

// Subscribe registers fn to receive every value committed to slot.
func (s *Identities) Subscribe(slot domain.Slot, fn func(domain.Identity)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextSub++
	key := s.nextSub
	if s.subs[slot] == nil {
		s.subs[slot] = make(map[uint64]func(domain.Identity))
	}
	s.subs[slot][key] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			delete(s.subs[slot], key)
			if len(s.subs[slot]) == 0 {
				delete(s.subs, slot)
			}
		})
	}
}

// Slots returns the populated slots in sorted order.
func (s *Identities) Slots() []domain.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.slots))
}

func (s *Identities) persistLocked() error {
	if s.detached != nil {
		return s.detached
	}
	if err := s.backend.Save(maps.Clone(s.slots)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Identities) notify(slot domain.Slot, id domain.Identity) {
	s.subsMu.Lock()
	fns := slices.Collect(maps.Values(s.subs[slot]))
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// pinned re-establishes info.id == publicKey on records read from storage.
func pinned(id domain.Identity) domain.Identity {
	if id.Info.ID() == id.PublicKey {
		return id
	}
	return domain.NewIdentity(id.PublicKey, id.SecretKey, id.Info.Profile)
}

// Compile-time assertion that Identities implements domain.IdentityStore.
var _ domain.IdentityStore = (*Identities)(nil)
