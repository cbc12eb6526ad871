package identity

import (
	"fmt"

	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/util/logx"
)

// How an asserted identity was turned into a stored one.
const (
	importFromSeed      = "seed"
	importFromSecretKey = "secret-key"
	importReadOnly      = "read-only"
	importSynthesized   = "synthesized"
)

// ImportRoomIdentity stores the identity a peer asserted for roomID, unless
// roomID already has an identity. keys holds the secret material known
// locally, keyed by identity id; a known seed wins over a known secret key.
// Without either the identity is stored read-only.
func (s *Service) ImportRoomIdentity(
	roomID domain.RoomID,
	asserted *domain.Info,
	keys domain.Keys,
) error {
	if asserted == nil {
		return nil
	}
	slot := roomID.Slot()
	if _, exists := s.store.Get(slot); exists {
		return nil
	}

	id, how, err := merge(*asserted, keys)
	if err != nil {
		return fmt.Errorf("import identity for room %q: %w", roomID, err)
	}

	stored, err := s.store.SetIfAbsent(slot, id)
	if stored {
		logx.Info("Imported room identity",
			"room_id", roomID.String(),
			"public_key", id.PublicKey,
			"via", how,
		)
	}
	return err
}

// merge decides which identity to store for an assertion.
func merge(asserted domain.Info, keys domain.Keys) (domain.Identity, string, error) {
	assertedID := asserted.ID()
	material := keys[assertedID]

	switch {
	case material.Seed != "":
		id := crypto.IdentityFromSeed(asserted.Profile, material.Seed)
		if id.PublicKey != assertedID {
			logx.Warn("Seed does not derive the asserted identity",
				"asserted_id", assertedID,
				"derived_id", id.PublicKey,
			)
		}
		return id, importFromSeed, nil

	case material.SecretKey != "":
		id, err := crypto.IdentityFromSecretKey(asserted.Profile, material.SecretKey)
		if err != nil {
			return domain.Identity{}, "", err
		}
		return id, importFromSecretKey, nil

	case assertedID == "":
		id, err := crypto.NewIdentity(asserted.Profile)
		if err != nil {
			return domain.Identity{}, "", err
		}
		return id, importSynthesized, nil

	default:
		return domain.NewIdentity(assertedID, "", asserted.Profile), importReadOnly, nil
	}
}
