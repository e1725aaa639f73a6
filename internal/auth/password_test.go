package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against original password", func(t *testing.T) {
		hash, err := HashPassword("Abc12345@", bcrypt.MinCost)
		require.NoError(t, err)
		require.NotEqual(t, "Abc12345@", hash)
		require.True(t, VerifyPassword(hash, "Abc12345@"))
	})

	t.Run("hashing twice yields different hashes", func(t *testing.T) {
		first, err := HashPassword("Abc12345@", bcrypt.MinCost)
		require.NoError(t, err)
		second, err := HashPassword("Abc12345@", bcrypt.MinCost)
		require.NoError(t, err)
		require.NotEqual(t, first, second)
		require.True(t, VerifyPassword(first, "Abc12345@"))
		require.True(t, VerifyPassword(second, "Abc12345@"))
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abc12345@", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("wrong password fails", func(t *testing.T) {
		require.False(t, VerifyPassword(hash, "Xyz98765@"))
	})

	t.Run("malformed hash fails instead of erroring", func(t *testing.T) {
		require.False(t, VerifyPassword("not-a-bcrypt-hash", "Abc12345@"))
	})

	t.Run("empty hash fails", func(t *testing.T) {
		require.False(t, VerifyPassword("", "Abc12345@"))
	})
}
