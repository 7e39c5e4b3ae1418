package dto

// RegisterRequest payload for new accounts. Names may be empty.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for profile updates. Pointer fields
// distinguish "absent" from "present but empty"; absent fields are left
// untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// RegisterResponse echoes the submitted email unmodified alongside the
// issued token.
type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

// LoginResponse carries the stored display fields plus a fresh token.
type LoginResponse struct {
	AuthToken string `json:"authtoken"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserEmail string `json:"userEmail"`
}

// UpdateProfileResponse carries the fresh token only; the caller already
// holds the submitted patch.
type UpdateProfileResponse struct {
	AuthToken string `json:"authtoken"`
}
