package authres

import (
	"gift-server/internal/domain/user"
)

// UserResponse is the wire representation of one account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a domain user for the wire.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.PublicID,
		Email: u.Email,
	}
}
