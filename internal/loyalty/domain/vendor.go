package domain

import "time"

type Vendor struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validator binds a user account to the vendor it scans for. One binding per
// user; the vendor scopes every promotion lookup that validator performs.
type Validator struct {
	ID        string
	UserID    string
	VendorID  string
	CreatedAt time.Time
}
