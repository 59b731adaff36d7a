package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/idx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

var (
	ErrInvalidVendor     = errors.New("vendor name is required")
	ErrVendorNameTaken   = errors.New("vendor name already taken")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyValidator  = errors.New("user is already a validator")
	ErrValidatorNotFound = errors.New("validator not found")
)

type VendorService struct {
	Store store.Store
}

// CreateVendor registers a new vendor.
func (s *VendorService) CreateVendor(ctx context.Context, name string) (domain.Vendor, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Vendor{}, ErrInvalidVendor
	}

	vendor := domain.Vendor{
		ID:   idx.New().String(),
		Name: name,
	}
	if err := s.Store.Vendors().CreateVendor(ctx, vendor); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Vendor{}, ErrVendorNameTaken
		}
		return domain.Vendor{}, fmt.Errorf("failed to create vendor: %w", err)
	}

	log.Info("vendor created", slog.String("vendor_id", vendor.ID), slog.String("name", name))
	return vendor, nil
}

func (s *VendorService) GetVendorByID(ctx context.Context, id string) (domain.Vendor, error) {
	vendor, err := s.Store.Vendors().GetVendorByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Vendor{}, ErrVendorNotFound
	}
	return vendor, err
}

func (s *VendorService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.Store.Vendors().ListVendors(ctx)
}

// DeleteVendor removes the vendor; promotions and validator bindings cascade.
func (s *VendorService) DeleteVendor(ctx context.Context, id string) error {
	err := s.Store.Vendors().DeleteVendor(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrVendorNotFound
	}
	return err
}

// BindValidator makes an existing user a validator for the vendor. The
// user's role is promoted so the vendor-scoped scan endpoint accepts them.
// Both writes happen in one transaction.
func (s *VendorService) BindValidator(ctx context.Context, vendorID, userID string) (domain.Validator, error) {
	log := slogx.FromContext(ctx)

	// 1. Both sides of the binding must exist.
	if _, err := s.Store.Vendors().GetVendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Validator{}, ErrVendorNotFound
		}
		return domain.Validator{}, fmt.Errorf("failed to fetch vendor: %w", err)
	}
	user, err := s.Store.Users().GetActiveUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Validator{}, ErrUserNotFound
		}
		return domain.Validator{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	// 2. One vendor per validator.
	if _, err := s.Store.Validators().GetValidatorByUserID(ctx, userID); err == nil {
		return domain.Validator{}, ErrAlreadyValidator
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Validator{}, fmt.Errorf("failed to check validator binding: %w", err)
	}

	validator := domain.Validator{
		ID:       idx.New().String(),
		UserID:   user.ID,
		VendorID: vendorID,
	}

	// 3. Create the binding and promote the role atomically.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Validators().CreateValidator(ctx, validator); err != nil {
			return err
		}
		return tx.Users().UpdateRole(ctx, user.ID, domain.RoleValidator)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Validator{}, ErrAlreadyValidator
		}
		return domain.Validator{}, fmt.Errorf("failed to bind validator: %w", err)
	}

	log.Info("validator bound",
		slog.String("validator_id", validator.ID),
		slog.String("vendor_id", vendorID),
		slog.String("user_id", user.ID),
	)
	return validator, nil
}

func (s *VendorService) ListValidators(ctx context.Context, vendorID string) ([]domain.Validator, error) {
	return s.Store.Validators().ListVendorValidators(ctx, vendorID)
}
