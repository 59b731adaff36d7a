package scantoken_test

import (
	"testing"

	"github.com/stampcard/loyalty/pkg/scantoken"
	"github.com/stretchr/testify/require"
)

func TestMessageMarshal(t *testing.T) {
	t.Parallel()

	m := scantoken.Message{UserID: "user-123", TimestampUTC: "2025-01-01T00:00:00Z"}
	require.JSONEq(t, `{"userId":"user-123","timestampUTC":"2025-01-01T00:00:00Z"}`, m.Marshal())
}

func TestParseMessage(t *testing.T) {
	t.Parallel()

	t.Run("round trips a marshalled message", func(t *testing.T) {
		m := scantoken.Message{UserID: "user-123", TimestampUTC: "2025-01-01T00:00:00Z"}
		parsed, err := scantoken.ParseMessage(m.Marshal())
		require.NoError(t, err)
		require.Equal(t, m, parsed)
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		parsed, err := scantoken.ParseMessage(`{"userId":"u1","timestampUTC":"t","nonce":"abcd1234","extra":42}`)
		require.NoError(t, err)
		require.Equal(t, "u1", parsed.UserID)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := scantoken.ParseMessage(`{"userId":`)
		require.ErrorIs(t, err, scantoken.ErrMalformed)
	})

	t.Run("rejects missing userId", func(t *testing.T) {
		_, err := scantoken.ParseMessage(`{"timestampUTC":"2025-01-01T00:00:00Z"}`)
		require.ErrorIs(t, err, scantoken.ErrMalformed)
	})

	t.Run("rejects empty userId", func(t *testing.T) {
		_, err := scantoken.ParseMessage(`{"userId":"","timestampUTC":"t"}`)
		require.ErrorIs(t, err, scantoken.ErrMalformed)
	})

	t.Run("tolerates missing timestamp", func(t *testing.T) {
		parsed, err := scantoken.ParseMessage(`{"userId":"u1"}`)
		require.NoError(t, err)
		require.Empty(t, parsed.TimestampUTC)
	})
}
