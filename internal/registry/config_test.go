package registry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerid/internal/registry"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, name := range []string{"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "ANNOUNCE_RATE", "ANNOUNCE_BURST", "TOKEN_MAX_SKEW"} {
		t.Setenv(name, "")
	}

	cfg, err := registry.LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 1.0, cfg.AnnounceRate)
	assert.Equal(t, 10, cfg.AnnounceBurst)
	assert.Equal(t, 5*time.Minute, cfg.TokenMaxSkew)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ANNOUNCE_RATE", "2.5")
	t.Setenv("ANNOUNCE_BURST", "4")
	t.Setenv("TOKEN_MAX_SKEW", "30s")

	cfg, err := registry.LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.AnnounceRate)
	assert.Equal(t, 4, cfg.AnnounceBurst)
	assert.Equal(t, 30*time.Second, cfg.TokenMaxSkew)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"low port":       {"PORT", "80"},
		"bad port":       {"PORT", "eighty"},
		"zero rate":      {"ANNOUNCE_RATE", "0"},
		"negative burst": {"ANNOUNCE_BURST", "-1"},
		"bad skew":       {"TOKEN_MAX_SKEW", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := registry.LoadConfig()
			assert.Error(t, err)
		})
	}
}
