package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/credential-service/internal/auth"
)

func TestHashPasswordNeverEqualsPlaintext(t *testing.T) {
	digest, err := auth.HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "pw1", digest)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := auth.HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := auth.HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)

	// same plaintext, different accounts, different digests
	require.NotEqual(t, first, second)
}

func TestComparePassword(t *testing.T) {
	digest, err := auth.HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, auth.ComparePassword(digest, "pw1"))
	require.Error(t, auth.ComparePassword(digest, "pw2"))
	require.Error(t, auth.ComparePassword(digest, ""))
}
