package ports

import (
	"context"

	"github.com/devcopilot/assistant-api/internal/core/domain"
)

// AuthService implements registration, login and token-based identity lookup.
type AuthService interface {
	Register(ctx context.Context, username, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
}
