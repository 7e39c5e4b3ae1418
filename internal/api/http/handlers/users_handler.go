package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-service/internal/api/dto"
	"github.com/spec-kit/credential-service/internal/auth"
	"github.com/spec-kit/credential-service/internal/service"
	apperrors "github.com/spec-kit/credential-service/pkg/util"
)

// UsersHandler exposes the credential endpoints.
type UsersHandler struct {
	credentials *service.CredentialService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(credentialService *service.CredentialService) *UsersHandler {
	return &UsersHandler{credentials: credentialService}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, err := h.credentials.Register(c.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		AuthToken: token,
		Email:     account.Email,
	})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, err := h.credentials.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AuthToken: token,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		UserEmail: account.Email,
	})
}

// UpdateProfile handles PUT /api/auth/update. The caller identity is the
// email asserted by the boundary layer; the service trusts it as-is.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validatePatch(req); len(details) > 0 {
		return apperrors.NewValidationError("validation errors in update request", details)
	}

	token, err := h.credentials.UpdateProfile(c.Context(), auth.IdentityFromContext(c), service.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.UpdateProfileResponse{AuthToken: token})
}

// validatePatch rejects fields that are present but empty. Absent fields
// are fine; the merge layer leaves them untouched.
func validatePatch(req dto.UpdateProfileRequest) map[string]any {
	details := map[string]any{}
	if req.FirstName != nil && *req.FirstName == "" {
		details["firstName"] = "must be at least 1 character"
	}
	if req.LastName != nil && *req.LastName == "" {
		details["lastName"] = "must be at least 1 character"
	}
	return details
}
