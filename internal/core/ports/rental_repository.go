package ports

import (
	"context"

	"github.com/chatop/rental-api/internal/core/domain"
)

// RentalRepository persists rental listings.
type RentalRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Rental, error)
	FindAll(ctx context.Context) ([]domain.Rental, error)
	Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
}
