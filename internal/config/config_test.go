package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	require.Equal(t, "giftsdb", cfg.Mongo.Database)
	require.True(t, cfg.Mongo.EnsureIndexes)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_BCRYPT_COST", "10")
	t.Setenv("MONGO_DATABASE", "accounts")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, "accounts", cfg.Mongo.Database)
	require.Equal(t, "9090", cfg.App.Port)
}
