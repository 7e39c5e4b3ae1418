package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/credential-service/internal/domain"
)

// memoryUserRepository is an in-memory UserRepository used by tests and
// local development without a store. It mirrors the MongoDB semantics:
// exact-email keys, store-assigned ids, and a uniqueness guard on insert.
type memoryUserRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.UserAccount
}

// NewMemoryUserRepository returns an empty in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{accounts: make(map[string]*domain.UserAccount)}
}

func (r *memoryUserRepository) Create(_ context.Context, account *domain.UserAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return ErrDuplicateEmail
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	stored := *account
	r.accounts[account.Email] = &stored
	return nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, email, firstName, lastName string, updatedAt time.Time) (*domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	account.FirstName = firstName
	account.LastName = lastName
	stamped := updatedAt
	account.UpdatedAt = &stamped

	copied := *account
	return &copied, nil
}
