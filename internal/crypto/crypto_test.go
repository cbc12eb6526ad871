package crypto_test

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peerid/internal/crypto"
	"peerid/internal/domain"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	kp, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	cases := [][]byte{
		{},
		{0},
		{0xff, 0xfe, 0xfd},
		kp.Public,
		kp.Secret,
	}
	for _, b := range cases {
		got, err := crypto.Decode(crypto.Encode(b))
		require.NoError(t, err)
		assert.Equal(t, []byte(b), append([]byte{}, got...))
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, s := range []string{"not base64!", "a", "abc=", "+/+/"} {
		_, err := crypto.Decode(s)
		assert.ErrorIs(t, err, domain.ErrMalformedKeyText, "input %q", s)
	}
}

func TestIdentityFromSeed_Deterministic(t *testing.T) {
	profile := domain.Profile{DisplayName: "alice"}

	a := crypto.IdentityFromSeed(profile, "shared-secret")
	b := crypto.IdentityFromSeed(domain.Profile{}, "shared-secret")
	require.Equal(t, a.PublicKey, b.PublicKey)
	require.Equal(t, a.SecretKey, b.SecretKey)

	other := crypto.IdentityFromSeed(profile, "shared-secret ")
	assert.NotEqual(t, a.PublicKey, other.PublicKey)
}

func TestIdentityBuilders_PinInfoID(t *testing.T) {
	profile := domain.Profile{DisplayName: "bob", Email: "bob@example.com"}

	fresh, err := crypto.NewIdentity(profile)
	require.NoError(t, err)
	seeded := crypto.IdentityFromSeed(profile, "room seed")
	restored, err := crypto.IdentityFromSecretKey(profile, fresh.SecretKey)
	require.NoError(t, err)

	for _, id := range []domain.Identity{fresh, seeded, restored} {
		assert.Equal(t, id.PublicKey, id.Info.ID())
		assert.True(t, id.Owned())
		assert.Equal(t, "bob", id.Info.DisplayName)
	}
	assert.Equal(t, fresh.PublicKey, restored.PublicKey)
	assert.Equal(t, fresh.SecretKey, restored.SecretKey)
}

func TestNewIdentity_Unique(t *testing.T) {
	a, err := crypto.NewIdentity(domain.Profile{})
	require.NoError(t, err)
	b, err := crypto.NewIdentity(domain.Profile{})
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey, b.PublicKey)

	raw, err := crypto.Decode(a.PublicKey)
	require.NoError(t, err)
	assert.Len(t, raw, ed25519.PublicKeySize)
}

func TestIdentityFromSecretKey_Invalid(t *testing.T) {
	_, err := crypto.IdentityFromSecretKey(domain.Profile{}, "%%%")
	assert.ErrorIs(t, err, domain.ErrInvalidSecretKey)
	assert.ErrorIs(t, err, domain.ErrMalformedKeyText)

	_, err = crypto.IdentityFromSecretKey(domain.Profile{}, crypto.Encode(make([]byte, 12)))
	assert.ErrorIs(t, err, domain.ErrInvalidSecretKey)

	a, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	b, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	spliced := append(append([]byte{}, a.Secret[:32]...), b.Public...)
	_, err = crypto.IdentityFromSecretKey(domain.Profile{}, crypto.Encode(spliced))
	assert.ErrorIs(t, err, domain.ErrInvalidSecretKey)
}

func TestToken_SignVerify(t *testing.T) {
	id, err := crypto.NewIdentity(domain.Profile{})
	require.NoError(t, err)
	now := time.Unix(1_700_000_000, 0)
	req := crypto.TokenRequest{Method: "PUT", Path: "/identities/" + id.PublicKey, Body: []byte(`{"displayName":"x"}`)}

	tok, err := crypto.SignToken(id, req, now)
	require.NoError(t, err)

	require.NoError(t, crypto.VerifyToken(id.PublicKey, tok, req, now.Add(time.Second), time.Minute))
	assert.ErrorIs(t, crypto.VerifyToken(id.PublicKey, tok, req, now.Add(2*time.Minute), time.Minute), crypto.ErrInvalidToken)

	other, err := crypto.NewIdentity(domain.Profile{})
	require.NoError(t, err)
	assert.ErrorIs(t, crypto.VerifyToken(other.PublicKey, tok, req, now, time.Minute), crypto.ErrInvalidToken)
	assert.ErrorIs(t, crypto.VerifyToken(id.PublicKey, "short", req, now, time.Minute), crypto.ErrInvalidToken)
}

func TestToken_BoundToRequest(t *testing.T) {
	id := crypto.IdentityFromSeed(domain.Profile{}, "bound")
	now := time.Unix(1_700_000_000, 0)
	req := crypto.TokenRequest{Method: "PUT", Path: "/identities/" + id.PublicKey, Body: []byte(`{"displayName":"a"}`)}

	tok, err := crypto.SignToken(id, req, now)
	require.NoError(t, err)

	changed := map[string]crypto.TokenRequest{
		"method": {Method: "POST", Path: req.Path, Body: req.Body},
		"path":   {Method: req.Method, Path: "/identities/other", Body: req.Body},
		"body":   {Method: req.Method, Path: req.Path, Body: []byte(`{"displayName":"mallory"}`)},
	}
	for name, other := range changed {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, crypto.VerifyToken(id.PublicKey, tok, other, now, time.Minute), crypto.ErrInvalidToken)
		})
	}
}

func TestToken_ReadOnlyIdentity(t *testing.T) {
	owned, err := crypto.NewIdentity(domain.Profile{})
	require.NoError(t, err)
	readOnly := domain.NewIdentity(owned.PublicKey, "", domain.Profile{})

	_, err = crypto.SignToken(readOnly, crypto.TokenRequest{Method: "PUT", Path: "/"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrReadOnlyIdentity)
}

func TestFingerprint(t *testing.T) {
	id := crypto.IdentityFromSeed(domain.Profile{}, "fp")
	fp, err := crypto.Fingerprint(id.PublicKey)
	require.NoError(t, err)
	assert.Len(t, fp.String(), 20)

	again, err := crypto.Fingerprint(id.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, fp, again)

	_, err = crypto.Fingerprint("!!")
	assert.ErrorIs(t, err, domain.ErrMalformedKeyText)
}
