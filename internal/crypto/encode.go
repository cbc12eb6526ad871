package crypto

import (
	"encoding/base64"
	"fmt"

	"peerid/internal/domain"
)

var keyEncoding = base64.RawURLEncoding

// Encode returns the text form of raw key bytes.
func Encode(b []byte) string { return keyEncoding.EncodeToString(b) }

// Decode reverses Encode. Input that is not valid key text fails with
// domain.ErrMalformedKeyText.
func Decode(s string) ([]byte, error) {
	b, err := keyEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedKeyText, err)
	}
	return b, nil
}
