package dto

import "github.com/obs-bank/ledger-core/internal/core/domain"

// SignupRequest is the payload for registering a new user.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SigninRequest is the payload for authenticating a user.
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and basic user details.
type AuthResponse struct {
	Token    string      `json:"token"`
	UserID   string      `json:"userID"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID   string      `json:"userID"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
