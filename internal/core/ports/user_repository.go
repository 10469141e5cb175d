package ports

import (
	"context"

	"github.com/chatop/rental-api/internal/core/domain"
)

// UserRepository is the credential store: identity, password hash, role.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
