package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerid/cmd/peerid/commands"
	"peerid/internal/crypto"
	"peerid/internal/domain"
)

type cli struct {
	t    *testing.T
	home string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, name := range []string{"PEERID_BACKEND", "PEERID_PASSPHRASE", "PEERID_REGISTRY_URL", "PEERID_ANNOUNCE_TIMEOUT"} {
		t.Setenv(name, "")
	}
	t.Setenv("PEERID_ENV", "production")
	color.NoColor = true
	return &cli{t: t, home: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	err := commands.Run(append([]string{"--home", c.home}, args...), &out)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

var publicKeyLine = regexp.MustCompile(`Public key:\s+(\S+)`)

func publicKeyIn(t *testing.T, out string) string {
	t.Helper()
	m := publicKeyLine.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func writeInfo(t *testing.T, info domain.Info) string {
	t.Helper()
	b, err := json.Marshal(info)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "identity.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestWhoami_StableAcrossRuns(t *testing.T) {
	c := newCLI(t)

	first := publicKeyIn(t, c.mustRun("whoami"))
	second := publicKeyIn(t, c.mustRun("whoami", "--room", "unknown-room"))
	assert.Equal(t, first, second)
	assert.Contains(t, c.mustRun("whoami"), "owned")
}

func TestRoomNew_ListedByRooms(t *testing.T) {
	c := newCLI(t)
	def := publicKeyIn(t, c.mustRun("whoami"))

	out := c.mustRun("room", "new", "--name", "guest")
	roomKey := publicKeyIn(t, out)
	assert.NotEqual(t, def, roomKey)
	assert.Contains(t, out, "guest")

	rooms := c.mustRun("rooms")
	assert.Contains(t, rooms, def)
	assert.Contains(t, rooms, roomKey)
}

func TestImport_WithSeedIsOwned(t *testing.T) {
	c := newCLI(t)
	creator := crypto.IdentityFromSeed(domain.Profile{DisplayName: "host"}, "room-seed")

	out := c.mustRun("import", "r1", writeInfo(t, creator.Info), "--seed", "room-seed")
	assert.Equal(t, creator.PublicKey, publicKeyIn(t, out))
	assert.Contains(t, out, "owned")

	whoami := c.mustRun("whoami", "--room", "r1")
	assert.Equal(t, creator.PublicKey, publicKeyIn(t, whoami))
	assert.Contains(t, whoami, "host")
}

func TestImport_WithoutKeysIsReadOnly(t *testing.T) {
	c := newCLI(t)
	peer := crypto.IdentityFromSeed(domain.Profile{DisplayName: "peer"}, "peer")

	out := c.mustRun("import", "r2", writeInfo(t, peer.Info))
	assert.Equal(t, peer.PublicKey, publicKeyIn(t, out))
	assert.Contains(t, out, "read-only")

	again := c.mustRun("import", "r2", writeInfo(t, crypto.IdentityFromSeed(domain.Profile{}, "other").Info))
	assert.Contains(t, again, "already has an identity")
	assert.Equal(t, peer.PublicKey, publicKeyIn(t, again))
}

func TestImport_SeedAndSecretAreExclusive(t *testing.T) {
	c := newCLI(t)
	peer := crypto.IdentityFromSeed(domain.Profile{}, "p")

	_, err := c.run("import", "r3", writeInfo(t, peer.Info), "--seed", "p", "--secret", peer.SecretKey)
	assert.Error(t, err)
}

func TestProfileSet_UpdatesCurrentIdentity(t *testing.T) {
	c := newCLI(t)
	before := publicKeyIn(t, c.mustRun("whoami"))

	out := c.mustRun("profile", "set", "--name", "ivy", "--email", "ivy@example.com")
	assert.Contains(t, out, "ivy@example.com")

	whoami := c.mustRun("whoami")
	assert.Equal(t, before, publicKeyIn(t, whoami))
	assert.Contains(t, whoami, "ivy")

	_, err := c.run("profile", "set")
	assert.Error(t, err)
}

func TestDeriveAndFingerprint(t *testing.T) {
	c := newCLI(t)
	want := crypto.IdentityFromSeed(domain.Profile{}, "abc")

	out := c.mustRun("derive", "--seed", "abc")
	assert.Equal(t, want.PublicKey, publicKeyIn(t, out))
	assert.NotContains(t, out, want.SecretKey)
	assert.Contains(t, c.mustRun("derive", "--seed", "abc", "--show-secret"), want.SecretKey)

	def := publicKeyIn(t, c.mustRun("whoami"))
	fp, err := crypto.Fingerprint(def)
	require.NoError(t, err)
	assert.Contains(t, c.mustRun("fingerprint"), string(fp))
}

func TestFetch_RequiresRegistry(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("fetch", "anything")
	assert.Error(t, err)
}

func TestWrongPassphraseKeepsStoredIdentity(t *testing.T) {
	c := newCLI(t)
	def := publicKeyIn(t, c.mustRun("-p", "right", "whoami"))

	_, err := c.run("-p", "wrong", "profile", "set", "--name", "oops")
	assert.Error(t, err)

	assert.Equal(t, def, publicKeyIn(t, c.mustRun("-p", "right", "whoami")))
}
