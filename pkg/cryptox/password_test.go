package cryptox

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		os.Exit(1)
	}
	SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	require.NoError(t, VerifyPassword("hunter2hunter2", hash))
	require.ErrorIs(t, VerifyPassword("hunter3hunter3", hash), ErrPasswordMismatch)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("same password", a))
	require.NoError(t, VerifyPassword("same password", b))
}

func TestVerifyPasswordRejectsMangledHash(t *testing.T) {
	require.Error(t, VerifyPassword("whatever", "not-a-phc-string"))
	require.Error(t, VerifyPassword("whatever", ""))
}

func TestGenerateResetCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		require.Len(t, code, ResetCodeDigits)

		_, convErr := strconv.Atoi(code)
		require.NoError(t, convErr, "code must be numeric: %q", code)
		seen[code] = true
	}
	// 32 draws over 10000 values collide sometimes, but never collapse to
	// a single value.
	require.Greater(t, len(seen), 1)
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some.jwt.token")
	require.NotEmpty(t, fp)
	require.Equal(t, fp, FingerprintToken("some.jwt.token"))
	require.NotEqual(t, fp, FingerprintToken("other.jwt.token"))
	require.NotContains(t, fp, "=")
}
