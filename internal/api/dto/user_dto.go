package dto

import "github.com/trattoria-labs/restaurant-service/internal/domain"

// SignUpRequest payload for new users.
type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResponse is returned on successful sign-in.
type SignInResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	ID        string `json:"_id"`
}

// SignUpResponse wraps the created user.
type SignUpResponse struct {
	Message string       `json:"message"`
	Result  *domain.User `json:"result"`
}

// UserUpdateRequest is a partial update; omitted fields are left untouched.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
