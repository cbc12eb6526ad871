package crypto

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"peerid/internal/domain"
)

// ErrInvalidToken is returned when a request token fails verification.
var ErrInvalidToken = errors.New("invalid identity token")

// TokenRequest is the part of an HTTP request a token is bound to.
type TokenRequest struct {
	Method string
	Path   string
	Body   []byte
}

// message is what gets signed: method, path, body digest and the stamp.
func (r TokenRequest) message(stamp string) []byte {
	sum := sha256.Sum256(r.Body)
	return []byte(strings.Join([]string{
		strings.ToUpper(r.Method),
		r.Path,
		hex.EncodeToString(sum[:]),
		stamp,
	}, "\n"))
}

// SignToken returns a token proving the caller holds id's secret key and
// sent req at now. The token is the encoded signature followed by the
// unix-millis stamp.
func SignToken(id domain.Identity, req TokenRequest, now time.Time) (string, error) {
	if !id.Owned() {
		return "", domain.ErrReadOnlyIdentity
	}
	kp, err := Ed25519FromSecretKey(id.SecretKey)
	if err != nil {
		return "", err
	}
	defer Wipe(kp.Secret)

	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	sig := SignEd25519(kp.Secret, req.message(stamp))
	return Encode(append(sig, stamp...)), nil
}

// VerifyToken checks that token was signed by publicKey for req no more
// than maxSkew away from now.
func VerifyToken(publicKey, token string, req TokenRequest, now time.Time, maxSkew time.Duration) error {
	pubRaw, err := Decode(publicKey)
	if err != nil {
		return err
	}
	if len(pubRaw) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key length %d", ErrInvalidToken, len(pubRaw))
	}
	raw, err := Decode(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if len(raw) <= ed25519.SignatureSize {
		return fmt.Errorf("%w: too short", ErrInvalidToken)
	}
	sig, stamp := raw[:ed25519.SignatureSize], string(raw[ed25519.SignatureSize:])
	if !VerifyEd25519(ed25519.PublicKey(pubRaw), req.message(stamp), sig) {
		return fmt.Errorf("%w: bad signature", ErrInvalidToken)
	}

	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp", ErrInvalidToken)
	}
	skew := now.Sub(time.UnixMilli(ms))
	if skew < -maxSkew || skew > maxSkew {
		return fmt.Errorf("%w: timestamp outside %s window", ErrInvalidToken, maxSkew)
	}
	return nil
}
