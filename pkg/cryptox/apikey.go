package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// APIKeyPrefix marks raw keys so leaked values are recognisable in logs and
// secret scanners.
const APIKeyPrefix = "lk_"

// GenerateAPIKey returns a new raw API key: prefix + uuid4 (dashless) +
// 128 bits of extra entropy. The raw key is shown to the caller exactly
// once; only its fingerprint is stored.
func GenerateAPIKey() (string, error) {
	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate api key: %w", err)
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return APIKeyPrefix + id + base64.RawURLEncoding.EncodeToString(entropy), nil
}

// FingerprintToken returns the deterministic SHA-256 fingerprint of a token,
// base64url encoded. Stored instead of the raw value so the database never
// holds usable credentials.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ConstantTimeEquals compares two strings without leaking a timing signal.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
