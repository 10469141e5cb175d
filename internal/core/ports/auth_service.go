package ports

import (
	"context"

	"github.com/chatop/rental-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthService authenticates users and mints bearer tokens.
type AuthService interface {
	// Login verifies the password for the given email and returns a fresh
	// token. Unknown email and wrong password are indistinguishable to the
	// caller: both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates a new account with the default user role and returns
	// a token for it.
	Register(ctx context.Context, input RegisterInput) (string, error)

	// CurrentUser resolves the subject of an already-verified token into its
	// stored account.
	CurrentUser(ctx context.Context, email string) (*domain.User, error)
}
