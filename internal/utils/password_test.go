package utils

import (
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("gym-rat-2024")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" || hash == "gym-rat-2024" {
		t.Errorf("HashPassword() returned %q, expected a salted hash", hash)
	}
}

// bcrypt salts per call, so equal inputs must produce distinct hashes. A
// store-side equality comparison against a fresh hash can therefore never
// work; only CheckPassword can.
func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, _ := HashPassword("samepassword")
	hash2, _ := HashPassword("samepassword")

	if hash1 == hash2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, _ := HashPassword("correcthorse")

	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{"correct password", "correcthorse", true},
		{"wrong password", "batterystaple", false},
		{"empty password", "", false},
		{"suffix added", "correcthorse1", false},
		{"case sensitive", "CorrectHorse", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, hash); got != tt.expected {
				t.Errorf("CheckPassword(%q) = %v, expected %v", tt.password, got, tt.expected)
			}
		})
	}
}

func TestCheckPassword_BadHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash"} {
		if CheckPassword("password", hash) {
			t.Errorf("CheckPassword with hash %q should return false", hash)
		}
	}
}
