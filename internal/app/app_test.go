package app_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerid/internal/app"
	"peerid/internal/crypto"
	"peerid/internal/domain"
	"peerid/internal/registry"
)

func closeApp(t *testing.T, a *app.App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, name := range []string{"PEERID_ENV", "PEERID_BACKEND", "PEERID_PASSPHRASE", "PEERID_REGISTRY_URL", "PEERID_ANNOUNCE_TIMEOUT"} {
		t.Setenv(name, "")
	}
	t.Setenv("PEERID_HOME", "/tmp/peerid-home")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "/tmp/peerid-home", cfg.Home)
	assert.Equal(t, app.BackendFile, cfg.Backend)
	assert.Empty(t, cfg.RegistryURL)
	assert.Equal(t, 10*time.Second, cfg.AnnounceTimeout)
	assert.Equal(t, "/tmp/peerid-home/identity.json", cfg.LegacyPath())
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":        {"PEERID_BACKEND": "etcd"},
		"unknown environment":    {"PEERID_ENV": "staging"},
		"bad timeout":            {"PEERID_ANNOUNCE_TIMEOUT": "later"},
		"negative timeout":       {"PEERID_ANNOUNCE_TIMEOUT": "-1s"},
		"passphrase with sqlite": {"PEERID_BACKEND": "sqlite", "PEERID_PASSPHRASE": "x"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PEERID_HOME", t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := app.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewWire_Backends(t *testing.T) {
	cases := map[string]app.Config{
		"file":   {Backend: app.BackendFile},
		"sealed": {Backend: app.BackendFile, Passphrase: "hunter2"},
		"sqlite": {Backend: app.BackendSQLite},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			cfg.Home = t.TempDir()

			first, err := app.NewWire(&cfg)
			require.NoError(t, err)
			def := first.Current("").MyIdentity
			assert.True(t, def.Owned())
			closeApp(t, first)

			again, err := app.NewWire(&cfg)
			require.NoError(t, err)
			defer closeApp(t, again)
			assert.Equal(t, def, again.Current("any-room").MyIdentity)
		})
	}
}

func TestNewWire_MemoryBackendIsEphemeral(t *testing.T) {
	cfg := app.Config{Backend: app.BackendMemory, Home: t.TempDir()}

	first, err := app.NewWire(&cfg)
	require.NoError(t, err)
	closeApp(t, first)
	second, err := app.NewWire(&cfg)
	require.NoError(t, err)
	defer closeApp(t, second)

	assert.NotEqual(t, first.Current("").MyID, second.Current("").MyID)
	assert.Nil(t, second.Registry)
}

func TestNewWire_AdoptsLegacyIdentity(t *testing.T) {
	home := t.TempDir()
	old := crypto.IdentityFromSeed(domain.Profile{DisplayName: "old"}, "legacy")
	doc := `{"publicKey":"` + old.PublicKey + `","secretKey":"` + old.SecretKey + `","info":{"displayName":"old"}}`
	require.NoError(t, os.WriteFile(filepath.Join(home, "identity.json"), []byte(doc), 0o600))

	a, err := app.NewWire(&app.Config{Home: home})
	require.NoError(t, err)
	defer closeApp(t, a)

	assert.Equal(t, old, a.Current("").MyIdentity)
}

func TestNewWire_AnnouncesToRegistry(t *testing.T) {
	srv := registry.NewServer(&registry.Config{AnnounceRate: 100, AnnounceBurst: 100, TokenMaxSkew: time.Minute})
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()
	defer srv.Close()

	a, err := app.NewWire(&app.Config{
		Home:        t.TempDir(),
		Backend:     app.BackendMemory,
		RegistryURL: ts.URL,
		HTTP:        ts.Client(),
	})
	require.NoError(t, err)
	require.NotNil(t, a.Registry)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.IDs.Flush(ctx))

	require.NoError(t, a.IDs.UpdateInfo("", domain.Profile{DisplayName: "grace"}))
	closeApp(t, a)

	def := a.Current("").MyIdentity
	info, err := a.Registry.FetchIdentity(context.Background(), def.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, def.PublicKey, info.ID())
	assert.Equal(t, "grace", info.DisplayName)
}
