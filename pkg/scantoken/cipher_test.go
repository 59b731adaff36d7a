package scantoken_test

import (
	"encoding/base64"
	"testing"

	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stretchr/testify/require"
)

func TestNewCipherConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := scantoken.NewCipher(scantoken.AlgorithmECB, "")
		require.ErrorIs(t, err, scantoken.ErrCrypto)
	})

	t.Run("rejects unknown algorithm", func(t *testing.T) {
		_, err := scantoken.NewCipher("rot13", "s3cret")
		require.ErrorIs(t, err, scantoken.ErrCrypto)
	})

	t.Run("legacy variant requires exactly 16 byte key", func(t *testing.T) {
		_, err := scantoken.NewCipher(scantoken.AlgorithmECBLegacy, "short")
		require.ErrorIs(t, err, scantoken.ErrCrypto)

		c, err := scantoken.NewCipher(scantoken.AlgorithmECBLegacy, "0123456789abcdef")
		require.NoError(t, err)
		require.Equal(t, scantoken.AlgorithmECBLegacy, c.Algorithm())
	})
}

func TestECBRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)

	ct, err := c.Encrypt(`{"userId":"user-123"}`)
	require.NoError(t, err)
	require.NotEmpty(t, ct)

	pt, err := c.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, `{"userId":"user-123"}`, pt)
}

func TestECBDeterministic(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)

	first, err := c.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := c.Encrypt("same plaintext")
	require.NoError(t, err)

	require.Equal(t, first, second, "ECB has no IV, so same input must give same ciphertext")
}

func TestECBWrongSecret(t *testing.T) {
	t.Parallel()

	encrypter, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)
	decrypter, err := scantoken.NewCipher(scantoken.AlgorithmECB, "wrong")
	require.NoError(t, err)

	ct, err := encrypter.Encrypt(`{"userId":"user-123","timestampUTC":"2025-01-01T00:00:00Z"}`)
	require.NoError(t, err)

	_, err = decrypter.Decrypt(ct)
	require.ErrorIs(t, err, scantoken.ErrCrypto)
}

func TestECBRejectsGarbage(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)

	t.Run("invalid base64", func(t *testing.T) {
		_, err := c.Decrypt("not base64 at all!!!")
		require.ErrorIs(t, err, scantoken.ErrCrypto)
	})

	t.Run("unaligned ciphertext", func(t *testing.T) {
		_, err := c.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")))
		require.ErrorIs(t, err, scantoken.ErrCrypto)
	})

	t.Run("empty ciphertext", func(t *testing.T) {
		_, err := c.Decrypt("")
		require.ErrorIs(t, err, scantoken.ErrCrypto)
	})
}

func TestECBTamperRejection(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)

	plaintext := `{"userId":"user-123","timestampUTC":"2025-01-01T00:00:00Z"}`
	ct, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)

	// Flip one byte in every position. Each mutation must either fail the
	// decrypt outright or, at worst, yield garbage that is no longer the
	// original plaintext. Never a clean decode of different content.
	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0xFF

		pt, err := c.Decrypt(base64.StdEncoding.EncodeToString(mutated))
		if err == nil {
			require.NotEqual(t, plaintext, pt, "tampered byte %d decoded to original plaintext", i)
		} else {
			require.ErrorIs(t, err, scantoken.ErrCrypto)
		}
	}
}

func TestLegacyUsesURLSafeAlphabet(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmECBLegacy, "0123456789abcdef")
	require.NoError(t, err)

	// Enough blocks that the standard alphabet would be overwhelmingly
	// likely to show up for at least one of them.
	var tokens string
	for i := 0; i < 32; i++ {
		ct, err := c.Encrypt("legacy payload padded out to multiple AES blocks")
		require.NoError(t, err)
		tokens += ct

		pt, err := c.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, "legacy payload padded out to multiple AES blocks", pt)
	}
	require.NotContains(t, tokens, "+")
	require.NotContains(t, tokens, "/")
}

func TestGCMRoundTripAndRandomisation(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmGCM, "s3cret")
	require.NoError(t, err)

	first, err := c.Encrypt("payload")
	require.NoError(t, err)
	second, err := c.Encrypt("payload")
	require.NoError(t, err)
	require.NotEqual(t, first, second, "GCM uses a random nonce per encryption")

	pt, err := c.Decrypt(first)
	require.NoError(t, err)
	require.Equal(t, "payload", pt)
}

func TestGCMRejectsTampering(t *testing.T) {
	t.Parallel()

	c, err := scantoken.NewCipher(scantoken.AlgorithmGCM, "s3cret")
	require.NoError(t, err)

	ct, err := c.Encrypt("payload")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	_, err = c.Decrypt(base64.StdEncoding.EncodeToString(raw))
	require.ErrorIs(t, err, scantoken.ErrCrypto)
}

func TestCiphersAreNotInterchangeable(t *testing.T) {
	t.Parallel()

	ecb, err := scantoken.NewCipher(scantoken.AlgorithmECB, "s3cret")
	require.NoError(t, err)
	gcm, err := scantoken.NewCipher(scantoken.AlgorithmGCM, "s3cret")
	require.NoError(t, err)

	ct, err := ecb.Encrypt("payload")
	require.NoError(t, err)

	_, err = gcm.Decrypt(ct)
	require.ErrorIs(t, err, scantoken.ErrCrypto)
}
