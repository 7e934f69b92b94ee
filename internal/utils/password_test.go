package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "secret1", hash)

	require.True(t, VerifyPassword(hash, "secret1"))
	require.False(t, VerifyPassword(hash, "secret2"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	// Different salts, both still verify.
	require.NotEqual(t, h1, h2)
	require.True(t, VerifyPassword(h1, "same-password"))
	require.True(t, VerifyPassword(h2, "same-password"))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	// A malformed hash is a mismatch, never a panic or error.
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}
