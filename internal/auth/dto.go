package auth

import (
	"github.com/livemart/livemart-backend/internal/users"
	"github.com/livemart/livemart-backend/pkg/enums"
)

// RegisterRequest captures the payload for onboarding a new account.
type RegisterRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Phone    string         `json:"phone" validate:"required"`
	Role     enums.UserRole `json:"role" validate:"required"`
	Address  *string        `json:"address,omitempty"`
	Lat      *float64       `json:"lat,omitempty"`
	Lng      *float64       `json:"lng,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyCodeRequest carries the OTP a user received after registration.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// AuthResponse contains the token and public user produced by a successful
// registration or login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// VerifyCodeResponse reports the outcome of an OTP check. Both outcomes are
// delivered with a 200 status; Verified carries the result.
type VerifyCodeResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}
