package dto

import (
	"time"

	"github.com/finderapp/finder-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Phone        *string `json:"phone,omitempty"`
	UserType     string  `json:"userType"`
	Organization *string `json:"organization,omitempty"`
	Position     *string `json:"position,omitempty"`
	Details      *string `json:"details,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyAuthorityRequest payload for the approval workflow.
type VerifyAuthorityRequest struct {
	ID      int64 `json:"id"`
	Approve bool  `json:"approve"`
}

// UserResponse is the account shape returned to clients; the password hash
// and token mirror never leave the server.
type UserResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	UserType     string    `json:"userType"`
	IsVerified   bool      `json:"isVerified"`
	Organization *string   `json:"organization,omitempty"`
	Position     *string   `json:"position,omitempty"`
	Details      *string   `json:"details,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Phone:        user.Phone,
		UserType:     string(user.Role),
		IsVerified:   user.Verified,
		Organization: user.Organization,
		Position:     user.Position,
		Details:      user.Details,
		CreatedAt:    user.CreatedAt,
	}
}
