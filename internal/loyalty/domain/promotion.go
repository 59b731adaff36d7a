package domain

import "time"

type Promotion struct {
	ID          string
	VendorID    string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Running reports whether the promotion is live at the given instant.
func (p Promotion) Running(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && !now.After(p.EndsAt)
}
