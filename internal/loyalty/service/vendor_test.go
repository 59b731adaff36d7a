package service

import (
	"context"
	"testing"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateVendor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &VendorService{Store: st}

	t.Run("creates and lists", func(t *testing.T) {
		vendor, err := svc.CreateVendor(ctx, "Corner Cafe")
		require.NoError(t, err)
		require.NotEmpty(t, vendor.ID)

		got, err := svc.GetVendorByID(ctx, vendor.ID)
		require.NoError(t, err)
		require.Equal(t, "Corner Cafe", got.Name)

		all, err := svc.ListVendors(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.CreateVendor(ctx, "")
		require.ErrorIs(t, err, ErrInvalidVendor)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		_, err := svc.CreateVendor(ctx, "Corner Cafe")
		require.ErrorIs(t, err, ErrVendorNameTaken)
	})

	t.Run("get unknown vendor", func(t *testing.T) {
		_, err := svc.GetVendorByID(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.ErrorIs(t, err, ErrVendorNotFound)
	})
}

func TestBindValidator(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &VendorService{Store: st}

	vendor := seedVendor(t, st, "Corner Cafe")
	alice := seedUser(t, st, codec, "alice", true)
	inactive := seedUser(t, st, codec, "inactive", false)

	t.Run("binds and promotes the user's role", func(t *testing.T) {
		validator, err := svc.BindValidator(ctx, vendor.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, vendor.ID, validator.VendorID)
		require.Equal(t, alice.ID, validator.UserID)

		promoted, err := st.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleValidator, promoted.Role)

		bound, err := svc.ListValidators(ctx, vendor.ID)
		require.NoError(t, err)
		require.Len(t, bound, 1)
	})

	t.Run("one vendor per validator", func(t *testing.T) {
		other := seedVendor(t, st, "Other Bar")
		_, err := svc.BindValidator(ctx, other.ID, alice.ID)
		require.ErrorIs(t, err, ErrAlreadyValidator)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := svc.BindValidator(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", alice.ID)
		require.ErrorIs(t, err, ErrVendorNotFound)
	})

	t.Run("inactive user cannot be bound", func(t *testing.T) {
		_, err := svc.BindValidator(ctx, vendor.ID, inactive.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteVendorCascades(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &VendorService{Store: st}

	vendor := seedVendor(t, st, "Corner Cafe")
	alice := seedUser(t, st, codec, "alice", true)
	_, err := svc.BindValidator(ctx, vendor.ID, alice.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVendor(ctx, vendor.ID))

	validators, err := svc.ListValidators(ctx, vendor.ID)
	require.NoError(t, err)
	require.Empty(t, validators)

	require.ErrorIs(t, svc.DeleteVendor(ctx, vendor.ID), ErrVendorNotFound)
}
