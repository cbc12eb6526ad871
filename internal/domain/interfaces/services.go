package interfaces

import (
	"context"

	domaintypes "peerid/internal/domain/types"
)

// IdentityService resolves, updates and imports the caller's identities.
type IdentityService interface {
	Resolve(roomID domaintypes.RoomID) domaintypes.Current
	Watch(roomID domaintypes.RoomID, fn func(domaintypes.Current)) (unsubscribe func())
	SetCurrentIdentity(
		roomID domaintypes.RoomID,
		fn func(prev domaintypes.Identity) domaintypes.Identity,
	) error
	ReplaceCurrentIdentity(roomID domaintypes.RoomID, id domaintypes.Identity) error
	UpdateInfo(roomID domaintypes.RoomID, profile domaintypes.Profile) error
	ImportRoomIdentity(
		roomID domaintypes.RoomID,
		asserted *domaintypes.Info,
		keys domaintypes.Keys,
	) error
	Flush(ctx context.Context) error
}
