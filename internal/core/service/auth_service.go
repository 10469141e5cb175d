package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatop/rental-api/internal/api/metrics"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

// AuthService implements registration, login and principal lookup.
type AuthService struct {
	repo   ports.UserRepository
	codec  ports.TokenCodec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec ports.TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Login verifies the password for email and mints a token. An unknown email
// and a wrong password both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.Email)
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", user.Email).Msg("user logged in")
	return token, nil
}

// Register creates an account with the default user role and returns a token
// for it. The existence check is not atomic against a concurrent duplicate
// registration; the unique index on email is the authority, and the
// repository reports its violation as ErrUserExists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return "", domain.ErrValidation
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	token, err := s.codec.Issue(created.Email)
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return token, nil
}

// CurrentUser resolves the subject of a verified token into its account.
// Tokens outlive account deletion, so a missing record is possible here.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}
