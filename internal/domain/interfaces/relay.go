package interfaces

import (
	"context"

	domaintypes "peerid/internal/domain/types"
)

// Announcer registers an identity's public key and info with the backend.
type Announcer interface {
	AnnounceIdentity(ctx context.Context, id domaintypes.Identity) error
}
