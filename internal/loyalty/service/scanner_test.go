package service

import (
	"context"
	"testing"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/domain"
	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &ScannerService{Store: st, Codec: codec}

	alice := seedUser(t, st, codec, "alice", true)
	bob := seedUser(t, st, codec, "bob", false)

	t.Run("valid token resolves active user", func(t *testing.T) {
		result, err := svc.Scan(ctx, alice.QRToken)
		require.NoError(t, err)
		require.Equal(t, domain.ScanValid, result.Status)
		require.NotNil(t, result.User)
		require.Equal(t, alice.ID, result.User.ID)
		require.NotEmpty(t, result.TimestampUTC)
	})

	t.Run("inactive user", func(t *testing.T) {
		result, err := svc.Scan(ctx, bob.QRToken)
		require.NoError(t, err)
		require.Equal(t, domain.ScanInactiveUser, result.Status)
		require.Nil(t, result.User)
	})

	t.Run("unknown user", func(t *testing.T) {
		issued, err := codec.Encode("01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.NoError(t, err)

		result, err := svc.Scan(ctx, issued.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ScanUnknownUser, result.Status)
	})

	t.Run("garbage token fails decryption", func(t *testing.T) {
		result, err := svc.Scan(ctx, "not-a-token")
		require.NoError(t, err)
		require.Equal(t, domain.ScanDecryptionFailed, result.Status)
	})

	t.Run("empty token is malformed", func(t *testing.T) {
		result, err := svc.Scan(ctx, "")
		require.NoError(t, err)
		require.Equal(t, domain.ScanMalformedToken, result.Status)
	})

	t.Run("token from a different secret fails decryption", func(t *testing.T) {
		other, err := scantoken.NewCipher(scantoken.AlgorithmECB, "some-other-secret")
		require.NoError(t, err)
		issued, err := scantoken.NewCodec(other, 0).Encode(alice.ID)
		require.NoError(t, err)

		result, err := svc.Scan(ctx, issued.Token)
		require.NoError(t, err)
		require.Equal(t, domain.ScanDecryptionFailed, result.Status)
	})
}

func TestScanExpiry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	cipher, err := scantoken.NewCipher(scantoken.AlgorithmECB, "test-scanner-secret")
	require.NoError(t, err)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := scantoken.NewCodec(cipher, 0).WithClock(func() time.Time { return issuedAt })

	alice := seedUser(t, st, issuer, "alice", true)

	t.Run("stale token rejected when expiry enforced", func(t *testing.T) {
		codec := scantoken.NewCodec(cipher, time.Hour).WithClock(func() time.Time {
			return issuedAt.Add(2 * time.Hour)
		})
		svc := &ScannerService{Store: st, Codec: codec}

		result, err := svc.Scan(ctx, alice.QRToken)
		require.NoError(t, err)
		require.Equal(t, domain.ScanTokenExpired, result.Status)
	})

	t.Run("stale token accepted when expiry disabled", func(t *testing.T) {
		codec := scantoken.NewCodec(cipher, 0).WithClock(func() time.Time {
			return issuedAt.Add(24 * time.Hour)
		})
		svc := &ScannerService{Store: st, Codec: codec}

		result, err := svc.Scan(ctx, alice.QRToken)
		require.NoError(t, err)
		require.Equal(t, domain.ScanValid, result.Status)
	})
}

func TestValidateForVendor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &ScannerService{Store: st, Codec: codec}

	now := time.Now().UTC()

	member := seedUser(t, st, codec, "member", true)
	scannerUser := seedUser(t, st, codec, "scanner", true)
	vendor := seedVendor(t, st, "Corner Cafe")
	seedValidator(t, st, vendor.ID, scannerUser.ID)

	otherVendor := seedVendor(t, st, "Other Bar")
	seedPromotion(t, st, otherVendor.ID, "Not Yours", now.Add(-time.Hour), now.Add(time.Hour), true)

	t.Run("non-validator is rejected", func(t *testing.T) {
		_, err := svc.ValidateForVendor(ctx, member.QRToken, member.ID)
		require.ErrorIs(t, err, ErrNotValidator)
	})

	t.Run("valid scan with no promotions returns empty list", func(t *testing.T) {
		result, err := svc.ValidateForVendor(ctx, member.QRToken, scannerUser.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ScanValid, result.Status)
		require.NotNil(t, result.Promotions)
		require.Empty(t, result.Promotions)
	})

	t.Run("running promotions are scoped to the validator's vendor", func(t *testing.T) {
		running := seedPromotion(t, st, vendor.ID, "Free Coffee", now.Add(-time.Hour), now.Add(time.Hour), true)
		seedPromotion(t, st, vendor.ID, "Ended", now.Add(-3*time.Hour), now.Add(-time.Hour), true)
		seedPromotion(t, st, vendor.ID, "Disabled", now.Add(-time.Hour), now.Add(time.Hour), false)

		result, err := svc.ValidateForVendor(ctx, member.QRToken, scannerUser.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ScanValid, result.Status)
		require.Len(t, result.Promotions, 1)
		require.Equal(t, running.ID, result.Promotions[0].ID)
	})

	t.Run("bad token short-circuits before promotions", func(t *testing.T) {
		result, err := svc.ValidateForVendor(ctx, "garbage", scannerUser.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ScanDecryptionFailed, result.Status)
		require.Empty(t, result.Promotions)
	})
}

func TestEncryptForScanner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	codec := newTestCodec(t)
	svc := &ScannerService{Store: st, Codec: codec}

	alice := seedUser(t, st, codec, "alice", true)

	token, err := svc.EncryptForScanner(ctx, alice.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The produced token must round-trip through the normal scan path.
	result, err := svc.Scan(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.ScanValid, result.Status)
	require.Equal(t, alice.ID, result.User.ID)
}
