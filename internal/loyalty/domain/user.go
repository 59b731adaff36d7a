package domain

import "time"

// Roles a user account can hold. A validator is a regular account bound to a
// vendor through a Validator record.
const (
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleValidator = "validator"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded
	Role         string

	// QRToken is the encrypted scanner token stamped at registration and
	// re-issued on refresh. Opaque here; only pkg/scantoken interprets it.
	QRToken string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
