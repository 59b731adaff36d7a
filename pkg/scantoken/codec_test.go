package scantoken_test

import (
	"testing"
	"time"

	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, secret string, maxAge time.Duration) *scantoken.Codec {
	t.Helper()
	c, err := scantoken.NewCipher(scantoken.AlgorithmECB, secret)
	require.NoError(t, err)
	return scantoken.NewCodec(c, maxAge)
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "s3cret", 0)

	issued, err := codec.Encode("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.Len(t, issued.Nonce, scantoken.NonceLength)
	require.False(t, issued.IssuedAt.IsZero())

	msg, err := codec.Decode(issued.Token)
	require.NoError(t, err)
	require.Equal(t, "user-123", msg.UserID)

	issuedAt, err := time.Parse(time.RFC3339, msg.TimestampUTC)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().UTC(), issuedAt, time.Minute)
}

func TestCodecDeterministicWithFixedClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	first, err := newTestCodec(t, "s3cret", 0).WithClock(clock).Encode("user-123")
	require.NoError(t, err)
	second, err := newTestCodec(t, "s3cret", 0).WithClock(clock).Encode("user-123")
	require.NoError(t, err)

	// Same userId, timestamp, and secret yield the same token. The nonce is
	// a sibling field and does not influence the ciphertext.
	require.Equal(t, first.Token, second.Token)
	require.NotEqual(t, first.Nonce, second.Nonce)
}

func TestCodecRejectsEmptyUserID(t *testing.T) {
	t.Parallel()

	_, err := newTestCodec(t, "s3cret", 0).Encode("")
	require.ErrorIs(t, err, scantoken.ErrMalformed)
}

func TestCodecDecodeFailures(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "s3cret", 0)

	t.Run("empty token is malformed", func(t *testing.T) {
		_, err := codec.Decode("")
		require.ErrorIs(t, err, scantoken.ErrMalformed)
	})

	t.Run("wrong secret is a decryption failure", func(t *testing.T) {
		issued, err := codec.Encode("user-123")
		require.NoError(t, err)

		_, err = newTestCodec(t, "wrong", 0).Decode(issued.Token)
		require.ErrorIs(t, err, scantoken.ErrDecryptionFailed)
	})

	t.Run("garbage token is a decryption failure", func(t *testing.T) {
		_, err := codec.Decode("AAAA not-a-real-token AAAA")
		require.ErrorIs(t, err, scantoken.ErrDecryptionFailed)
	})

	t.Run("valid ciphertext of junk is malformed", func(t *testing.T) {
		cipher, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
		require.NoError(t, err)
		ct, err := cipher.Encrypt("this is not json")
		require.NoError(t, err)

		_, err = codec.Decode(ct)
		require.ErrorIs(t, err, scantoken.ErrMalformed)
	})
}

func TestCodecExpiryPolicy(t *testing.T) {
	t.Parallel()

	issueTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("disabled by default", func(t *testing.T) {
		codec := newTestCodec(t, "s3cret", 0).WithClock(func() time.Time { return issueTime })
		issued, err := codec.Encode("user-123")
		require.NoError(t, err)

		// Ten years later the token still decodes.
		codec.WithClock(func() time.Time { return issueTime.AddDate(10, 0, 0) })
		_, err = codec.Decode(issued.Token)
		require.NoError(t, err)
	})

	t.Run("fresh token passes when enabled", func(t *testing.T) {
		codec := newTestCodec(t, "s3cret", time.Hour).WithClock(func() time.Time { return issueTime })
		issued, err := codec.Encode("user-123")
		require.NoError(t, err)

		codec.WithClock(func() time.Time { return issueTime.Add(30 * time.Minute) })
		_, err = codec.Decode(issued.Token)
		require.NoError(t, err)
	})

	t.Run("stale token is rejected when enabled", func(t *testing.T) {
		codec := newTestCodec(t, "s3cret", time.Hour).WithClock(func() time.Time { return issueTime })
		issued, err := codec.Encode("user-123")
		require.NoError(t, err)

		codec.WithClock(func() time.Time { return issueTime.Add(2 * time.Hour) })
		_, err = codec.Decode(issued.Token)
		require.ErrorIs(t, err, scantoken.ErrExpired)
	})

	t.Run("unparseable timestamp is rejected when enabled", func(t *testing.T) {
		cipher, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
		require.NoError(t, err)
		ct, err := cipher.Encrypt(`{"userId":"user-123","timestampUTC":"yesterday-ish"}`)
		require.NoError(t, err)

		_, err = newTestCodec(t, "s3cret", time.Hour).Decode(ct)
		require.ErrorIs(t, err, scantoken.ErrExpired)
	})
}

func TestCodecGCMVariant(t *testing.T) {
	t.Parallel()

	cipher, err := scantoken.NewCipher(scantoken.AlgorithmGCM, "s3cret")
	require.NoError(t, err)
	codec := scantoken.NewCodec(cipher, 0)

	issued, err := codec.Encode("user-123")
	require.NoError(t, err)

	msg, err := codec.Decode(issued.Token)
	require.NoError(t, err)
	require.Equal(t, "user-123", msg.UserID)
}
