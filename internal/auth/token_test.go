package auth_test

import (
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/credential-service/internal/auth"
)

func TestIssueEmbedsAccountID(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 5)

	token, expiresAt, err := tm.Issue("65f1a2b3c4d5e6f7a8b9c0d1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	// the service never parses tokens; decode here as a downstream
	// consumer would
	claims := &auth.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", claims.UserID)
	require.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", claims.Subject)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestIssueRejectsWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 5)

	token, _, err := tm.Issue("65f1a2b3c4d5e6f7a8b9c0d1")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &auth.Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}
