package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/credential-service/internal/domain"
	"github.com/spec-kit/credential-service/internal/repository"
)

func TestMemoryRepoCreateAssignsIDAndEnforcesUniqueness(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	account := &domain.UserAccount{Email: "a@x.com", PasswordHash: "digest", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, account))
	require.False(t, account.ID.IsZero())

	err := repo.Create(ctx, &domain.UserAccount{Email: "a@x.com", PasswordHash: "other"})
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestMemoryRepoGetByEmailReturnsCopy(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.UserAccount{Email: "a@x.com", FirstName: "Jo"}))

	fetched, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	fetched.FirstName = "mutated"

	again, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Jo", again.FirstName)

	_, err = repo.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryRepoUpdateProfileStampsUpdatedAt(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.UserAccount{Email: "a@x.com", FirstName: "Jo", LastName: "Doe"}))

	now := time.Now()
	updated, err := repo.UpdateProfile(ctx, "a@x.com", "Joanna", "Doe", now)
	require.NoError(t, err)
	require.Equal(t, "Joanna", updated.FirstName)
	require.NotNil(t, updated.UpdatedAt)
	require.True(t, updated.UpdatedAt.Equal(now))

	_, err = repo.UpdateProfile(ctx, "missing@x.com", "X", "Y", now)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
