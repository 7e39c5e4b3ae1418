package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/credential-service/internal/config"
	"github.com/spec-kit/credential-service/internal/repository"
	"github.com/spec-kit/credential-service/internal/service"
)

func newTestService(t *testing.T) (*service.CredentialService, repository.UserRepository) {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	repo := repository.NewMemoryUserRepository()
	svc := service.NewCredentialService(cfg, service.CredentialDependencies{UserRepo: repo})
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestRegisterReturnsTokenAndRawEmail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	account, token, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "a@x.com", account.Email)
	require.False(t, account.ID.IsZero())
	require.False(t, account.CreatedAt.IsZero())
	require.Nil(t, account.UpdatedAt)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@x.com", "pw2", "Other", "Name")
	require.ErrorIs(t, err, service.ErrDuplicateAccount)
}

func TestRegisterEmailMatchingIsExactString(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	// email is not normalized, so a different casing is a new account
	account, _, err := svc.Register(ctx, "A@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)
	require.Equal(t, "A@x.com", account.Email)
}

func TestRegisterSamePasswordDifferentDigests(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "shared-pw", "Jo", "Doe")
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, "b@x.com", "shared-pw", "Bo", "Roe")
	require.NoError(t, err)

	first, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := repo.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.NotEqual(t, first.PasswordHash, second.PasswordHash)
}

func TestLoginReturnsDisplayFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	account, token, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "Jo", account.FirstName)
	require.Equal(t, "Doe", account.LastName)
	require.Equal(t, "a@x.com", account.Email)

	// a second login returns the same display fields
	again, _, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, account.FirstName, again.FirstName)
	require.Equal(t, account.LastName, again.LastName)
	require.Equal(t, account.Email, again.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "wrongpw")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "pw1")
	require.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestLoginDoesNotStampUpdatedAt(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Nil(t, stored.UpdatedAt)
}

func TestUpdateProfileReplacesSuppliedFields(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	token, err := svc.UpdateProfile(ctx, "a@x.com", service.ProfilePatch{FirstName: strPtr("Joanna")})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Joanna", stored.FirstName)
	require.Equal(t, "Doe", stored.LastName)
	require.NotNil(t, stored.UpdatedAt)

	// the change survives a subsequent login
	account, _, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "Joanna", account.FirstName)
}

func TestUpdateProfileEmptyStringMeansNoChange(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, "a@x.com", service.ProfilePatch{
		FirstName: strPtr(""),
		LastName:  strPtr("Smith"),
	})
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Jo", stored.FirstName, "empty string must not clear the field")
	require.Equal(t, "Smith", stored.LastName)
	require.NotNil(t, stored.UpdatedAt, "updatedAt is stamped on every successful update")
}

func TestUpdateProfileMissingIdentity(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "a@x.com", "pw1", "Jo", "Doe")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, "", service.ProfilePatch{FirstName: strPtr("Joanna")})
	require.ErrorIs(t, err, service.ErrMissingIdentity)

	// no mutation occurred
	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Jo", stored.FirstName)
	require.Nil(t, stored.UpdatedAt)
}

func TestUpdateProfileUnknownIdentity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), "nobody@x.com", service.ProfilePatch{FirstName: strPtr("Joanna")})
	require.ErrorIs(t, err, service.ErrAccountNotFound)
}
