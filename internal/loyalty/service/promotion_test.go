package service

import (
	"context"
	"testing"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stretchr/testify/require"
)

func TestCreatePromotion(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PromotionService{Store: st}

	vendor := seedVendor(t, st, "Corner Cafe")
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("creates under the vendor", func(t *testing.T) {
		p, err := svc.CreatePromotion(ctx, vendor.ID, domain.Promotion{
			Title:       "Free Coffee",
			Description: "One per customer",
			StartsAt:    now,
			EndsAt:      now.Add(24 * time.Hour),
			Active:      true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, p.ID)
		require.Equal(t, vendor.ID, p.VendorID)

		got, err := svc.GetPromotionByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, "Free Coffee", got.Title)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		_, err := svc.CreatePromotion(ctx, vendor.ID, domain.Promotion{
			StartsAt: now, EndsAt: now.Add(time.Hour),
		})
		require.ErrorIs(t, err, ErrInvalidPromotion)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := svc.CreatePromotion(ctx, vendor.ID, domain.Promotion{
			Title: "Backwards", StartsAt: now.Add(time.Hour), EndsAt: now,
		})
		require.ErrorIs(t, err, ErrInvalidPromotion)
	})

	t.Run("rejects unknown vendor", func(t *testing.T) {
		_, err := svc.CreatePromotion(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", domain.Promotion{
			Title: "Orphan", StartsAt: now, EndsAt: now.Add(time.Hour),
		})
		require.ErrorIs(t, err, ErrVendorNotFound)
	})
}

func TestListPromotions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PromotionService{Store: st}

	vendor := seedVendor(t, st, "Corner Cafe")
	now := time.Now().UTC()

	running := seedPromotion(t, st, vendor.ID, "Running", now.Add(-time.Hour), now.Add(time.Hour), true)
	seedPromotion(t, st, vendor.ID, "Ended", now.Add(-3*time.Hour), now.Add(-time.Hour), true)
	seedPromotion(t, st, vendor.ID, "Upcoming", now.Add(time.Hour), now.Add(3*time.Hour), true)

	all, err := svc.ListPromotions(ctx, vendor.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	active, err := svc.ListPromotions(ctx, vendor.ID, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, running.ID, active[0].ID)
}

func TestUpdateAndDeletePromotion(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PromotionService{Store: st}

	vendor := seedVendor(t, st, "Corner Cafe")
	now := time.Now().UTC().Truncate(time.Second)
	p := seedPromotion(t, st, vendor.ID, "Free Coffee", now, now.Add(time.Hour), true)

	t.Run("updates mutable fields", func(t *testing.T) {
		p.Title = "Free Tea"
		p.EndsAt = now.Add(2 * time.Hour)

		got, err := svc.UpdatePromotion(ctx, p)
		require.NoError(t, err)
		require.Equal(t, "Free Tea", got.Title)
	})

	t.Run("update rejects bad window", func(t *testing.T) {
		bad := p
		bad.StartsAt = now.Add(3 * time.Hour)
		bad.EndsAt = now
		_, err := svc.UpdatePromotion(ctx, bad)
		require.ErrorIs(t, err, ErrInvalidPromotion)
	})

	t.Run("update of unknown promotion", func(t *testing.T) {
		ghost := p
		ghost.ID = "01ARZ3NDEKTSV4RRFFQ69G5FAV"
		_, err := svc.UpdatePromotion(ctx, ghost)
		require.ErrorIs(t, err, ErrPromotionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeletePromotion(ctx, p.ID))
		_, err := svc.GetPromotionByID(ctx, p.ID)
		require.ErrorIs(t, err, ErrPromotionNotFound)
		require.ErrorIs(t, svc.DeletePromotion(ctx, p.ID), ErrPromotionNotFound)
	})
}
