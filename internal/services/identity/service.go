package identity

import (
	"context"
	"sync"
	"time"

	"peerid/internal/domain"
	"peerid/internal/util/logx"
)

// DefaultAnnounceTimeout bounds a single background announcement.
const DefaultAnnounceTimeout = 10 * time.Second

// Service is the current-identity resolver backed by an identity store.
type Service struct {
	store     domain.IdentityStore
	announcer domain.Announcer
	timeout   time.Duration

	postedMu sync.Mutex
	posted   map[domain.Slot]struct{}

	// flightMu guards inflight and idle; idle is closed when inflight drops to zero.
	flightMu sync.Mutex
	inflight int
	idle     chan struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithAnnounceTimeout sets the deadline of each background announcement.
func WithAnnounceTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a Service over store and announces the default identity.
// A nil announcer disables announcements.
func New(store domain.IdentityStore, announcer domain.Announcer, opts ...Option) *Service {
	s := &Service{
		store:     store,
		announcer: announcer,
		timeout:   DefaultAnnounceTimeout,
		posted:    make(map[domain.Slot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if def, ok := store.Get(domain.DefaultSlot); ok {
		s.announce(def)
	}
	return s
}

// Resolve returns the caller's active identity in roomID: the room's own
// identity when one exists, the default identity otherwise. The first
// resolution of a room identity announces it.
func (s *Service) Resolve(roomID domain.RoomID) domain.Current {
	if room, ok := s.roomIdentity(roomID); ok {
		s.announceOnce(roomID.Slot(), room)
		return domain.Current{MyID: room.PublicKey, MyIdentity: room}
	}
	def, _ := s.store.Get(domain.DefaultSlot)
	return domain.Current{MyID: def.PublicKey, MyIdentity: def}
}

// Watch calls fn with the current resolution of roomID now and again after
// every write to the room slot or the default slot.
func (s *Service) Watch(roomID domain.RoomID, fn func(domain.Current)) (unsubscribe func()) {
	refresh := func(domain.Identity) { fn(s.Resolve(roomID)) }

	unsubs := []func(){s.store.Subscribe(domain.DefaultSlot, refresh)}
	if slot := roomID.Slot(); !slot.IsDefault() {
		unsubs = append(unsubs, s.store.Subscribe(slot, refresh))
	}

	fn(s.Resolve(roomID))
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// SetCurrentIdentity rewrites the identity Resolve(roomID) would return:
// the room slot when it exists, the default slot otherwise.
func (s *Service) SetCurrentIdentity(
	roomID domain.RoomID,
	fn func(prev domain.Identity) domain.Identity,
) error {
	slot := domain.DefaultSlot
	if _, ok := s.roomIdentity(roomID); ok {
		slot = roomID.Slot()
	}
	return s.store.Update(slot, func(prev domain.Identity, _ bool) domain.Identity {
		return fn(prev)
	})
}

// ReplaceCurrentIdentity is SetCurrentIdentity with a replacement value.
func (s *Service) ReplaceCurrentIdentity(roomID domain.RoomID, id domain.Identity) error {
	return s.SetCurrentIdentity(roomID, func(domain.Identity) domain.Identity { return id })
}

// UpdateInfo replaces the profile of the current identity in roomID and
// announces the updated info.
func (s *Service) UpdateInfo(roomID domain.RoomID, profile domain.Profile) error {
	var updated domain.Identity
	err := s.SetCurrentIdentity(roomID, func(prev domain.Identity) domain.Identity {
		updated = prev.WithProfile(profile)
		return updated
	})
	if !updated.IsZero() {
		s.announce(updated)
	}
	return err
}

// Flush waits until no announcement is running or ctx is done.
// Announcement errors are logged, never returned.
func (s *Service) Flush(ctx context.Context) error {
	s.flightMu.Lock()
	if s.inflight == 0 {
		s.flightMu.Unlock()
		return nil
	}
	idle := s.idle
	s.flightMu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) beginFlight() {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if s.inflight == 0 {
		s.idle = make(chan struct{})
	}
	s.inflight++
}

func (s *Service) endFlight() {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		close(s.idle)
	}
}

func (s *Service) roomIdentity(roomID domain.RoomID) (domain.Identity, bool) {
	slot := roomID.Slot()
	if slot.IsDefault() {
		return domain.Identity{}, false
	}
	return s.store.Get(slot)
}

// announceOnce announces id unless slot was already announced by this Service.
func (s *Service) announceOnce(slot domain.Slot, id domain.Identity) {
	s.postedMu.Lock()
	_, done := s.posted[slot]
	s.posted[slot] = struct{}{}
	s.postedMu.Unlock()

	if !done {
		s.announce(id)
	}
}

// announce registers id in the background. Read-only identities cannot
// authenticate the request and are skipped.
func (s *Service) announce(id domain.Identity) {
	if s.announcer == nil {
		return
	}
	if !id.Owned() {
		logx.Debug("Skipping announcement of read-only identity", "public_key", id.PublicKey)
		return
	}

	s.beginFlight()
	go func() {
		defer s.endFlight()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.announcer.AnnounceIdentity(ctx, id); err != nil {
			logx.Warn("Announcing identity failed",
				"public_key", id.PublicKey,
				"error", err.Error(),
			)
		}
	}()
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
