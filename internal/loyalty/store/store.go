package store

import (
	"context"
	"errors"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep concerns tidy and let tests fake one
// repository without faking the world.
type Store interface {
	Users() Users
	Vendors() Vendors
	Promotions() Promotions
	Validators() Validators
	APIKeys() APIKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. The recommended way to do multi-step
	// writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repositories plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user regardless of active flag.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetActiveUserByID returns the user only when active.
	GetActiveUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateQRToken replaces the stored scanner token and bumps updated_at.
	UpdateQRToken(ctx context.Context, userID, token string) error

	// SetActive flips the active flag and bumps updated_at.
	SetActive(ctx context.Context, userID string, active bool) error

	// UpdateRole changes the user's role and bumps updated_at.
	UpdateRole(ctx context.Context, userID, role string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Vendors interface {
	GetVendorByID(ctx context.Context, id string) (domain.Vendor, error)
	GetVendorByName(ctx context.Context, name string) (domain.Vendor, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	CreateVendor(ctx context.Context, v domain.Vendor) error

	// DeleteVendor cascades to promotions and validators (per schema).
	DeleteVendor(ctx context.Context, id string) error
}

type Promotions interface {
	GetPromotionByID(ctx context.Context, id string) (domain.Promotion, error)
	ListVendorPromotions(ctx context.Context, vendorID string) ([]domain.Promotion, error)

	// ListActivePromotions returns the vendor's promotions whose window
	// contains now and whose active flag is set. An empty result is a normal
	// outcome, not an error.
	ListActivePromotions(ctx context.Context, vendorID string, now time.Time) ([]domain.Promotion, error)

	CreatePromotion(ctx context.Context, p domain.Promotion) error
	UpdatePromotion(ctx context.Context, p domain.Promotion) error
	DeletePromotion(ctx context.Context, id string) error

	// DeactivateEndedPromotions clears the active flag on promotions whose
	// window has passed. Housekeeping; returns the number touched.
	DeactivateEndedPromotions(ctx context.Context, now time.Time) (int64, error)
}

type Validators interface {
	GetValidatorByUserID(ctx context.Context, userID string) (domain.Validator, error)
	ListVendorValidators(ctx context.Context, vendorID string) ([]domain.Validator, error)
	CreateValidator(ctx context.Context, v domain.Validator) error
	DeleteValidator(ctx context.Context, id string) error
}

type APIKeys interface {
	// GetAPIKeyByHash returns the key by its fingerprint, revoked or not.
	GetAPIKeyByHash(ctx context.Context, hash string) (domain.APIKey, error)

	ListOwnerAPIKeys(ctx context.Context, ownerUserID string) ([]domain.APIKey, error)
	CreateAPIKey(ctx context.Context, k domain.APIKey) error

	// RevokeAPIKey flips revoked and stamps revoked_at.
	RevokeAPIKey(ctx context.Context, id string, at time.Time) error

	// TouchAPIKey updates last_used_at. Best effort; failure is not fatal to
	// the request that used the key.
	TouchAPIKey(ctx context.Context, id string, at time.Time) error

	// DeleteRevokedAPIKeysBefore purges keys revoked before the cutoff.
	// Housekeeping; returns the number removed.
	DeleteRevokedAPIKeysBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
