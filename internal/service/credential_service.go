package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/credential-service/internal/auth"
	"github.com/spec-kit/credential-service/internal/config"
	"github.com/spec-kit/credential-service/internal/domain"
	"github.com/spec-kit/credential-service/internal/events"
	"github.com/spec-kit/credential-service/internal/repository"
	apperrors "github.com/spec-kit/credential-service/pkg/util"
)

// Stable domain errors returned by credential operations. Anything outside
// this set is a collaborator fault and surfaces as an opaque internal
// error.
var (
	ErrDuplicateAccount   = apperrors.NewDomainError("DUPLICATE_ACCOUNT", "user with this email already exists", http.StatusConflict, nil)
	ErrAccountNotFound    = apperrors.NewDomainError("ACCOUNT_NOT_FOUND", "user not found", http.StatusNotFound, nil)
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "wrong password", http.StatusUnauthorized, nil)
	ErrMissingIdentity    = apperrors.NewDomainError("MISSING_IDENTITY", "email not found in the request headers", http.StatusBadRequest, nil)
	ErrUpdateFailed       = apperrors.NewDomainError("UPDATE_FAILED", "failed to update profile", http.StatusInternalServerError, nil)
)

// ProfilePatch carries optional profile mutations. A nil field was not
// supplied; an empty string is treated as "no change", never as "clear".
type ProfilePatch struct {
	FirstName *string
	LastName  *string
}

// CredentialService coordinates registration, login and profile update
// flows. Each call is a stateless request unit; the only shared resource
// is the injected store.
type CredentialService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// CredentialDependencies encapsulates collaborator requirements.
type CredentialDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewCredentialService builds the service.
func NewCredentialService(cfg config.Config, deps CredentialDependencies) *CredentialService {
	return &CredentialService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The email is stored and returned exactly
// as submitted; matching is exact-string. The pre-insert existence check
// gives the friendly error path, while the store's unique email index is
// the authoritative guard against the check/insert race.
func (s *CredentialService) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.UserAccount, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrDuplicateAccount
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	account := &domain.UserAccount{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateAccount
		}
		return nil, "", apperrors.NewInternalError(err)
	}

	token, _, err := s.tokenMgr.Issue(account.ID.Hex())
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID.Hex(), events.AccountRegisteredPayload{
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	})

	return account, token, nil
}

// Login verifies credentials by exact email match and issues a fresh
// token. updatedAt is never touched by a login.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*domain.UserAccount, string, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokenMgr.Issue(account.ID.Hex())
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return account, token, nil
}

// UpdateProfile mutates the mutable fields of the account identified by an
// externally asserted email. The identity is trusted as-is; authenticating
// the caller is the boundary layer's job. Merge policy is "last non-empty
// wins": a field is replaced only when the patch carries a non-empty value
// for it, so an empty string means "no change", not "clear". The response
// carries only a fresh token.
func (s *CredentialService) UpdateProfile(ctx context.Context, identityEmail string, patch ProfilePatch) (string, error) {
	if identityEmail == "" {
		return "", ErrMissingIdentity
	}

	account, err := s.users.GetByEmail(ctx, identityEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", apperrors.NewInternalError(err)
	}

	firstName := account.FirstName
	if patch.FirstName != nil && *patch.FirstName != "" {
		firstName = *patch.FirstName
	}
	lastName := account.LastName
	if patch.LastName != nil && *patch.LastName != "" {
		lastName = *patch.LastName
	}

	updated, err := s.users.UpdateProfile(ctx, identityEmail, firstName, lastName, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// account vanished between lookup and write
			return "", ErrUpdateFailed
		}
		return "", apperrors.NewInternalError(err)
	}

	token, _, err := s.tokenMgr.Issue(updated.ID.Hex())
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventProfileUpdated, updated.ID.Hex(), events.ProfileUpdatedPayload{
		Email:     updated.Email,
		FirstName: updated.FirstName,
		LastName:  updated.LastName,
	})

	return token, nil
}

// TokenManager exposes the underlying token manager.
func (s *CredentialService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *CredentialService) publish(ctx context.Context, eventType events.EventType, accountID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
