package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/credential-service/internal/domain"
)

// Sentinel errors surfaced by store implementations.
var (
	// ErrNotFound signals no account document matched the query.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail signals the unique email index rejected an insert.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, account *domain.UserAccount) error
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	UpdateProfile(ctx context.Context, email, firstName, lastName string, updatedAt time.Time) (*domain.UserAccount, error)
}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository returns a MongoDB-backed implementation.
func NewUserRepository(users *mongo.Collection) UserRepository {
	return &userRepository{users: users}
}

func (r *userRepository) Create(ctx context.Context, account *domain.UserAccount) error {
	res, err := r.users.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = id
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	var account domain.UserAccount
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateProfile replaces the mutable fields and stamps updatedAt in a
// single findOneAndUpdate keyed by email, returning the document after the
// write so the caller sees the store-assigned state.
func (r *userRepository) UpdateProfile(ctx context.Context, email, firstName, lastName string, updatedAt time.Time) (*domain.UserAccount, error) {
	update := bson.M{"$set": bson.M{
		"firstName": firstName,
		"lastName":  lastName,
		"updatedAt": updatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account domain.UserAccount
	if err := r.users.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
