package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"peerid/internal/crypto"
)

const (
	sealedVersion = 1
	kdfScrypt     = "scrypt"

	// maxScryptN bounds the cost a sealed file may ask for on Load.
	maxScryptN = 1 << 20
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed file has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identities file")

// kdfParams names the key derivation and its cost parameters.
type kdfParams struct {
	Name string `json:"name"`
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
	Salt []byte `json:"salt"`
}

// sealedHeader is authenticated but not encrypted.
type sealedHeader struct {
	Version int       `json:"version"`
	KDF     kdfParams `json:"kdf"`
	Nonce   []byte    `json:"nonce"`
}

// sealedFile is the on-disk layout of identities.json.enc.
type sealedFile struct {
	sealedHeader
	Ciphertext []byte `json:"ciphertext"`
}

func defaultKDF() kdfParams { return kdfParams{Name: kdfScrypt, N: 1 << 15, R: 8, P: 1} }

func (k kdfParams) validate() error {
	if k.Name != kdfScrypt {
		return fmt.Errorf("unsupported key derivation %q", k.Name)
	}
	if k.N < 2 || k.N > maxScryptN || k.N&(k.N-1) != 0 {
		return fmt.Errorf("scrypt N=%d out of range", k.N)
	}
	if k.R < 1 || k.P < 1 || k.R*k.P >= 1<<30 {
		return fmt.Errorf("scrypt r=%d p=%d out of range", k.R, k.P)
	}
	if len(k.Salt) < 16 {
		return errors.New("scrypt salt too short")
	}
	return nil
}

// deriveKey returns the file key for passphrase; callers wipe it.
func (k kdfParams) deriveKey(passphrase string) ([]byte, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	return scrypt.Key([]byte(passphrase), k.Salt, k.N, k.R, k.P, chacha20poly1305.KeySize)
}

// additionalData binds the header to the ciphertext, so edited parameters
// fail authentication instead of silently deriving another key.
func (h sealedHeader) additionalData() ([]byte, error) {
	return json.Marshal(h)
}

// seal encrypts the serialized slots under passphrase.
func seal(passphrase string, raw []byte, kdf kdfParams) ([]byte, error) {
	kdf.Salt = make([]byte, 16)
	if _, err := rand.Read(kdf.Salt); err != nil {
		return nil, err
	}
	h := sealedHeader{Version: sealedVersion, KDF: kdf, Nonce: make([]byte, chacha20poly1305.NonceSizeX)}
	if _, err := rand.Read(h.Nonce); err != nil {
		return nil, err
	}

	key, err := kdf.deriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	ad, err := h.additionalData()
	if err != nil {
		return nil, err
	}

	return json.Marshal(sealedFile{
		sealedHeader: h,
		Ciphertext:   aead.Seal(nil, h.Nonce, raw, ad),
	})
}

// unseal opens a file produced by seal.
func unseal(passphrase string, b []byte) ([]byte, error) {
	var f sealedFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrongPassphrase, err)
	}
	if f.Version != sealedVersion {
		return nil, fmt.Errorf("unsupported identities file version %d", f.Version)
	}
	if len(f.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: bad nonce", ErrWrongPassphrase)
	}

	key, err := f.KDF.deriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	ad, err := f.additionalData()
	if err != nil {
		return nil, err
	}

	pt, err := aead.Open(nil, f.Nonce, f.Ciphertext, ad)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
