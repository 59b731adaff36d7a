package cryptox_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stampcard/loyalty/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// All password tests share one pepper file in a throwaway directory.
	dir, err := os.MkdirTemp("", "cryptox-test-*")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(dir + "/pepper")

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("hunter2", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("hunter3", hash), cryptox.ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := cryptox.HashPassword("hunter2")
	require.NoError(t, err)
	second, err := cryptox.HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	require.Error(t, cryptox.VerifyPassword("hunter2", "not-a-phc-hash"))
	require.Error(t, cryptox.VerifyPassword("hunter2", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
}

func TestGenerateAPIKey(t *testing.T) {
	first, err := cryptox.GenerateAPIKey()
	require.NoError(t, err)
	second, err := cryptox.GenerateAPIKey()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(first, cryptox.APIKeyPrefix))
	require.NotEqual(t, first, second)
	require.Greater(t, len(first), 40)
}

func TestFingerprintToken(t *testing.T) {
	fp := cryptox.FingerprintToken("lk_example")
	require.Equal(t, fp, cryptox.FingerprintToken("lk_example"), "fingerprint is deterministic")
	require.NotEqual(t, fp, cryptox.FingerprintToken("lk_other"))
	require.Len(t, fp, 43)
}
