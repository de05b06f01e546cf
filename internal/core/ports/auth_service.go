package ports

import (
	"context"
	"time"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserView is the public projection of a user returned by auth operations.
// It never carries the password hash.
type UserView struct {
	ID          string
	Email       string
	FirstName   string
	LastName    string
	Roles       []string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// AuthResult bundles a freshly issued token with the public user view.
type AuthResult struct {
	Token string
	User  UserView
}

// AuthService defines the identity use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// GrantRole adds a role to an existing user (administrative operation).
	GrantRole(ctx context.Context, userID, role string) error
}
