package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMintAPIKey(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &APIKeyService{Store: st}

	alice := seedUser(t, st, codec, "alice", true)

	t.Run("raw key is returned once and stored hashed", func(t *testing.T) {
		minted, err := svc.Mint(ctx, alice.ID, "kiosk")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(minted.Raw, cryptox.APIKeyPrefix))
		require.Equal(t, cryptox.FingerprintToken(minted.Raw), minted.Key.TokenHash)

		keys, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		require.NotContains(t, keys[0].TokenHash, minted.Raw)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Mint(ctx, alice.ID, "")
		require.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("rejects unknown owner", func(t *testing.T) {
		_, err := svc.Mint(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", "kiosk")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthenticateKey(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &APIKeyService{Store: st}

	alice := seedUser(t, st, codec, "alice", true)
	minted, err := svc.Mint(ctx, alice.ID, "kiosk")
	require.NoError(t, err)

	t.Run("resolves owner and role", func(t *testing.T) {
		userID, role, err := svc.AuthenticateKey(ctx, minted.Raw)
		require.NoError(t, err)
		require.Equal(t, alice.ID, userID)
		require.Equal(t, domain.RoleMember, role)
	})

	t.Run("stamps last used", func(t *testing.T) {
		keys, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		require.NotNil(t, keys[0].LastUsedAt)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, _, err := svc.AuthenticateKey(ctx, "lk_definitely-not-minted")
		require.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("empty key", func(t *testing.T) {
		_, _, err := svc.AuthenticateKey(ctx, "")
		require.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("deactivated owner", func(t *testing.T) {
		require.NoError(t, st.Users().SetActive(ctx, alice.ID, false))
		_, _, err := svc.AuthenticateKey(ctx, minted.Raw)
		require.ErrorIs(t, err, ErrInvalidAPIKey)
		require.NoError(t, st.Users().SetActive(ctx, alice.ID, true))
	})
}

func TestRevokeAPIKey(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &APIKeyService{Store: st}

	alice := seedUser(t, st, codec, "alice", true)
	bob := seedUser(t, st, codec, "bob", true)
	minted, err := svc.Mint(ctx, alice.ID, "kiosk")
	require.NoError(t, err)

	t.Run("another owner cannot revoke", func(t *testing.T) {
		err := svc.Revoke(ctx, bob.ID, minted.Key.ID)
		require.ErrorIs(t, err, ErrAPIKeyNotFound)
	})

	t.Run("revoked key stops authenticating", func(t *testing.T) {
		require.NoError(t, svc.Revoke(ctx, alice.ID, minted.Key.ID))

		_, _, err := svc.AuthenticateKey(ctx, minted.Raw)
		require.ErrorIs(t, err, ErrInvalidAPIKey)

		// Still listed for audit until housekeeping purges it.
		keys, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		require.True(t, keys[0].Revoked)
		require.NotNil(t, keys[0].RevokedAt)
	})

	t.Run("double revoke", func(t *testing.T) {
		require.ErrorIs(t, svc.Revoke(ctx, alice.ID, minted.Key.ID), ErrAPIKeyRevoked)
	})
}

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	keySvc := &APIKeyService{Store: st}

	alice := seedUser(t, st, codec, "alice", true)
	vendor := seedVendor(t, st, "Corner Cafe")
	now := time.Now().UTC()

	ended := seedPromotion(t, st, vendor.ID, "Ended", now.Add(-48*time.Hour), now.Add(-24*time.Hour), true)
	running := seedPromotion(t, st, vendor.ID, "Running", now.Add(-time.Hour), now.Add(time.Hour), true)

	stale, err := keySvc.Mint(ctx, alice.ID, "stale")
	require.NoError(t, err)
	require.NoError(t, st.APIKeys().RevokeAPIKey(ctx, stale.Key.ID, now.Add(-2*RevokedKeyRetention)))

	fresh, err := keySvc.Mint(ctx, alice.ID, "fresh")
	require.NoError(t, err)
	require.NoError(t, st.APIKeys().RevokeAPIKey(ctx, fresh.Key.ID, now))

	hk := NewHousekeepingService(st, testLogger(), time.Hour)
	hk.Start()
	hk.Stop()

	t.Run("ended promotions are deactivated", func(t *testing.T) {
		got, err := st.Promotions().GetPromotionByID(ctx, ended.ID)
		require.NoError(t, err)
		require.False(t, got.Active)

		still, err := st.Promotions().GetPromotionByID(ctx, running.ID)
		require.NoError(t, err)
		require.True(t, still.Active)
	})

	t.Run("long-revoked keys are purged", func(t *testing.T) {
		keys, err := keySvc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, keys, 1)
		require.Equal(t, fresh.Key.ID, keys[0].ID)
	})
}
