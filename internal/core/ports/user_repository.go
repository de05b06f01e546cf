package ports

import (
	"context"

	"github.com/techmart/commerce-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists mutable fields (is_active, last_login_at) of an existing user.
	Update(ctx context.Context, user *domain.User) error
	// AddRole adds role to the user's role set. Adding a role the user
	// already has is a no-op.
	AddRole(ctx context.Context, userID, role string) error
}
