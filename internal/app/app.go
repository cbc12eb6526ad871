package app

import (
	"context"
	"errors"

	"peerid/internal/domain"
	"peerid/internal/relay"
	"peerid/internal/services/identity"
	"peerid/internal/store"
)

// App bundles the store, services and clients the CLI works with.
type App struct {
	Store    *store.Identities
	IDs      *identity.Service
	Registry *relay.HTTP // nil when no registry is configured

	closers []func() error
}

// Current resolves the caller's identity in roomID.
func (a *App) Current(roomID domain.RoomID) domain.Current {
	return a.IDs.Resolve(roomID)
}

// Close waits for pending announcements and releases the backend.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.IDs.Flush(ctx), a.closeAll())
}
