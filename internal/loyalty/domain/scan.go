package domain

// ScanStatus is the terminal outcome of a single scan. Computed fresh per
// request, never persisted.
type ScanStatus string

const (
	ScanValid            ScanStatus = "valid"
	ScanMalformedToken   ScanStatus = "malformed_token"
	ScanDecryptionFailed ScanStatus = "decryption_failed"
	ScanTokenExpired     ScanStatus = "token_expired"
	ScanUnknownUser      ScanStatus = "unknown_user"
	ScanInactiveUser     ScanStatus = "inactive_user"
)

// ScanResult is what a decode/validate operation reports back. User and
// Promotions are populated only for ScanValid; TimestampUTC carries the
// issuance timestamp recovered from the token for display.
type ScanResult struct {
	Status       ScanStatus
	User         *User
	TimestampUTC string
	Promotions   []Promotion
}

// OK reports whether the scan reached a valid identity.
func (r ScanResult) OK() bool { return r.Status == ScanValid }
