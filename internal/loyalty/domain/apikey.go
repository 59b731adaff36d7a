package domain

import "time"

// APIKey is a third-party application credential. Only the SHA-256
// fingerprint of the raw key is stored; the raw value is shown once at mint
// time and never again.
type APIKey struct {
	ID          string
	Name        string
	TokenHash   string
	OwnerUserID string
	Revoked     bool
	RevokedAt   *time.Time
	CreatedAt   time.Time
	LastUsedAt  *time.Time
}
