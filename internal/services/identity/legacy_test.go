package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/services/identity"
	"peerid/internal/store"
)

func writeLegacy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLegacyFile_ImportsValidIdentity(t *testing.T) {
	old := crypto.IdentityFromSeed(domain.Profile{DisplayName: "veteran"}, "legacy")
	path := writeLegacy(t, `{"publicKey":"`+old.PublicKey+`","secretKey":"`+old.SecretKey+
		`","info":{"id":"`+old.PublicKey+`","displayName":"veteran"}}`)

	got, ok := identity.NewLegacyFile(path).ImportLegacyIdentity()
	require.True(t, ok)
	assert.Equal(t, old, got)

	ids, err := store.Open(store.NewMemoryBackend(), identity.NewLegacyFile(path))
	require.NoError(t, err)
	def, _ := ids.Get(domain.DefaultSlot)
	assert.Equal(t, old, def)
}

func TestLegacyFile_TreatsBrokenFilesAsAbsent(t *testing.T) {
	a := crypto.IdentityFromSeed(domain.Profile{}, "a")
	b := crypto.IdentityFromSeed(domain.Profile{}, "b")

	cases := map[string]string{
		"not json":      `{{{`,
		"bad secret":    `{"publicKey":"` + a.PublicKey + `","secretKey":"@@@"}`,
		"short secret":  `{"publicKey":"` + a.PublicKey + `","secretKey":"AAAA"}`,
		"mismatched pk": `{"publicKey":"` + b.PublicKey + `","secretKey":"` + a.SecretKey + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := identity.NewLegacyFile(writeLegacy(t, body)).ImportLegacyIdentity()
			assert.False(t, ok)
		})
	}

	_, ok := identity.NewLegacyFile(filepath.Join(t.TempDir(), "missing.json")).ImportLegacyIdentity()
	assert.False(t, ok)
}

func TestLegacyFile_CorruptFileRegeneratesDefault(t *testing.T) {
	ids, err := store.Open(store.NewMemoryBackend(), identity.NewLegacyFile(writeLegacy(t, `nope`)))
	require.NoError(t, err)

	def, ok := ids.Get(domain.DefaultSlot)
	require.True(t, ok)
	assert.True(t, def.Owned())
}
