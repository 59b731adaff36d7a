package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/internal/loyalty/store"
	"github.com/stampcard/loyalty/pkg/idx"
	"github.com/stampcard/loyalty/pkg/slogx"
)

var (
	ErrInvalidPromotion  = errors.New("promotion title and a valid window are required")
	ErrPromotionNotFound = errors.New("promotion not found")
)

type PromotionService struct {
	Store store.Store
}

// CreatePromotion adds a promotion under the vendor. The window must be
// coherent (startsAt before endsAt); an already-ended window is allowed so
// back office tooling can import history.
func (s *PromotionService) CreatePromotion(ctx context.Context, vendorID string, p domain.Promotion) (domain.Promotion, error) {
	log := slogx.FromContext(ctx)

	if p.Title == "" || p.StartsAt.IsZero() || p.EndsAt.IsZero() || !p.StartsAt.Before(p.EndsAt) {
		return domain.Promotion{}, ErrInvalidPromotion
	}

	if _, err := s.Store.Vendors().GetVendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Promotion{}, ErrVendorNotFound
		}
		return domain.Promotion{}, fmt.Errorf("failed to fetch vendor: %w", err)
	}

	p.ID = idx.New().String()
	p.VendorID = vendorID
	if err := s.Store.Promotions().CreatePromotion(ctx, p); err != nil {
		return domain.Promotion{}, fmt.Errorf("failed to create promotion: %w", err)
	}

	log.Info("promotion created",
		slog.String("promotion_id", p.ID),
		slog.String("vendor_id", vendorID),
		slog.Time("starts_at", p.StartsAt),
		slog.Time("ends_at", p.EndsAt),
	)
	return p, nil
}

func (s *PromotionService) GetPromotionByID(ctx context.Context, id string) (domain.Promotion, error) {
	p, err := s.Store.Promotions().GetPromotionByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Promotion{}, ErrPromotionNotFound
	}
	return p, err
}

// ListPromotions returns the vendor's promotions; activeOnly restricts to
// ones currently running.
func (s *PromotionService) ListPromotions(ctx context.Context, vendorID string, activeOnly bool) ([]domain.Promotion, error) {
	if activeOnly {
		return s.Store.Promotions().ListActivePromotions(ctx, vendorID, time.Now().UTC())
	}
	return s.Store.Promotions().ListVendorPromotions(ctx, vendorID)
}

// UpdatePromotion replaces the mutable fields of an existing promotion.
func (s *PromotionService) UpdatePromotion(ctx context.Context, p domain.Promotion) (domain.Promotion, error) {
	if p.Title == "" || !p.StartsAt.Before(p.EndsAt) {
		return domain.Promotion{}, ErrInvalidPromotion
	}

	if err := s.Store.Promotions().UpdatePromotion(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Promotion{}, ErrPromotionNotFound
		}
		return domain.Promotion{}, fmt.Errorf("failed to update promotion: %w", err)
	}
	return s.Store.Promotions().GetPromotionByID(ctx, p.ID)
}

func (s *PromotionService) DeletePromotion(ctx context.Context, id string) error {
	err := s.Store.Promotions().DeletePromotion(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPromotionNotFound
	}
	return err
}
