package ports

import (
	"context"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// UserRepository defines user persistence for registration and login.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether either identifier is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
