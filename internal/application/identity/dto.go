package identity

import "github.com/stockdash/backend/internal/domain/identity"

// LoginInput holds the credentials submitted to Login
type LoginInput struct {
	Email    string
	Password string
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Role  identity.Role `json:"role"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse maps a directory account to its public view
func ToUserResponse(acc identity.Account) UserResponse {
	return UserResponse{
		ID:    acc.ID,
		Email: acc.Email,
		Name:  acc.Name,
		Role:  acc.Role,
	}
}
