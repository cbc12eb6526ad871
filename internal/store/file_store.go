package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

const (
	identitiesFile       = "identities.json"
	sealedIdentitiesFile = "identities.json.enc"
)

// FileBackend persists all identity slots as one JSON document under dir.
// With a passphrase the document is sealed with scrypt + ChaCha20-Poly1305.
type FileBackend struct {
	dir        string
	passphrase string
	kdf        kdfParams
	mu         sync.Mutex
}

// NewFileBackend returns a plaintext FileBackend rooted at dir.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir, kdf: defaultKDF()}
}

// NewSealedFileBackend returns a FileBackend rooted at dir that encrypts
// the identities file with passphrase.
func NewSealedFileBackend(dir, passphrase string) *FileBackend {
	return &FileBackend{dir: dir, passphrase: passphrase, kdf: defaultKDF()}
}

// Path returns the file the backend reads and writes.
func (b *FileBackend) Path() string {
	if b.passphrase != "" {
		return filepath.Join(b.dir, sealedIdentitiesFile)
	}
	return filepath.Join(b.dir, identitiesFile)
}

// Load reads every slot; a missing file yields an empty mapping.
func (b *FileBackend) Load() (map[domain.Slot]domain.Identity, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	slots := make(map[domain.Slot]domain.Identity)
	if b.passphrase == "" {
		if _, err := readJSON(b.Path(), &slots); err != nil {
			return nil, err
		}
		return slots, nil
	}

	blob, err := readFile(b.Path())
	if err != nil || blob == nil {
		return slots, err
	}
	raw, err := unseal(b.passphrase, blob)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(raw)
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Save replaces the stored mapping with slots.
func (b *FileBackend) Save(slots map[domain.Slot]domain.Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}
	if b.passphrase == "" {
		return writeFile(b.Path(), raw, 0o600)
	}

	blob, err := seal(b.passphrase, raw, b.kdf)
	crypto.Wipe(raw)
	if err != nil {
		return err
	}
	return writeFile(b.Path(), blob, 0o600)
}

// Compile-time assertion that FileBackend implements domain.IdentityBackend.
var _ domain.IdentityBackend = (*FileBackend)(nil)
