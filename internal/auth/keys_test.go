package auth

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestNewKeyMaterial(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xab}, 32))

	key, err := NewKeyMaterial(secret)
	if err != nil {
		t.Fatalf("NewKeyMaterial() error = %v", err)
	}
	if len(key.Bytes()) != 32 {
		t.Errorf("key length = %d, expected 32", len(key.Bytes()))
	}
}

func TestNewKeyMaterial_LongerKey(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 64))

	if _, err := NewKeyMaterial(secret); err != nil {
		t.Errorf("64-byte key should be accepted, got error %v", err)
	}
}

func TestNewKeyMaterial_TooShort(t *testing.T) {
	// A 16-byte secret must abort startup before any request is served.
	secret := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 16))

	if _, err := NewKeyMaterial(secret); err == nil {
		t.Error("16-byte key should be rejected")
	}
}

func TestNewKeyMaterial_Empty(t *testing.T) {
	if _, err := NewKeyMaterial(""); err == nil {
		t.Error("empty secret should be rejected")
	}
}

func TestNewKeyMaterial_NotBase64(t *testing.T) {
	if _, err := NewKeyMaterial("!!! not base64 !!!"); err == nil {
		t.Error("invalid base64 secret should be rejected")
	}
}
