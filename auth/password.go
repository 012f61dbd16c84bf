package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	saltLength    = 16
	hashKeyLength = 64
)

// HashPassword derives a scrypt hash and encodes it as "salt:hash" (hex).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, hashKeyLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

// VerifyPassword checks a password against a stored "salt:hash" value.
// Rows predating hashing hold the plaintext password; those are still
// accepted so existing accounts keep working until their next login rewrites
// them.
func VerifyPassword(password string, stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	hash, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

// IsHashed reports whether a stored credential is in the salt:hash format.
func IsHashed(stored string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}
	if _, err := hex.DecodeString(parts[0]); err != nil {
		return false
	}
	_, err := hex.DecodeString(parts[1])
	return err == nil
}
