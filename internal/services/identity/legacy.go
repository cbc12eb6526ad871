package identity

import (
	"encoding/json"
	"os"

	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/util/logx"
)

// legacyRecord is the single-identity file written by earlier releases.
type legacyRecord struct {
	PublicKey string      `json:"publicKey"`
	SecretKey string      `json:"secretKey"`
	Info      domain.Info `json:"info"`
}

// LegacyFile imports the identity kept in a pre-slot identity file.
type LegacyFile struct {
	Path string
}

// NewLegacyFile returns a LegacyFile reading path.
func NewLegacyFile(path string) *LegacyFile { return &LegacyFile{Path: path} }

// ImportLegacyIdentity returns the legacy identity, rebuilt from its secret
// key. A missing, unreadable or inconsistent file counts as absent.
func (l *LegacyFile) ImportLegacyIdentity() (domain.Identity, bool) {
	b, err := os.ReadFile(l.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warn("Legacy identity unreadable, ignoring it", "path", l.Path, "error", err.Error())
		}
		return domain.Identity{}, false
	}

	var rec legacyRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		logx.Warn("Legacy identity is not valid JSON, ignoring it", "path", l.Path, "error", err.Error())
		return domain.Identity{}, false
	}

	id, err := crypto.IdentityFromSecretKey(rec.Info.Profile, rec.SecretKey)
	if err != nil {
		logx.Warn("Legacy identity has an invalid secret key, ignoring it", "path", l.Path, "error", err.Error())
		return domain.Identity{}, false
	}
	if rec.PublicKey != "" && rec.PublicKey != id.PublicKey {
		logx.Warn("Legacy identity public key does not match its secret key, ignoring it", "path", l.Path)
		return domain.Identity{}, false
	}

	logx.Info("Recovered legacy identity", "path", l.Path, "public_key", id.PublicKey)
	return id, true
}

var _ domain.LegacyIdentitySource = (*LegacyFile)(nil)
