package auth

import (
	"encoding/base64"
	"fmt"
)

// minKeyBytes is the minimum decoded secret length. HMAC-SHA-256 needs a key
// at least as long as the hash output.
const minKeyBytes = 32

// KeyMaterial holds the symmetric signing key, derived once at startup from
// the configured base64 secret. Rotating the key requires a restart; tokens
// signed under a prior key fail signature verification.
type KeyMaterial struct {
	key []byte
}

// NewKeyMaterial decodes the configured secret. It fails when the secret is
// missing, not valid base64, or decodes to fewer than 32 bytes, so a
// misconfigured process never starts serving.
func NewKeyMaterial(secret string) (KeyMaterial, error) {
	if secret == "" {
		return KeyMaterial{}, fmt.Errorf("jwt secret is required")
	}
	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return KeyMaterial{}, fmt.Errorf("jwt secret is not valid base64: %w", err)
	}
	if len(raw) < minKeyBytes {
		return KeyMaterial{}, fmt.Errorf("jwt secret too short: %d bytes decoded, need at least %d", len(raw), minKeyBytes)
	}
	return KeyMaterial{key: raw}, nil
}

// Bytes returns the raw key. Callers must not modify it.
func (k KeyMaterial) Bytes() []byte { return k.key }
