package ports

import (
	"context"
	"time"
)

// RentalView is the service-level projection of a rental. Picture is either
// empty or a "data:image/jpeg;base64,..." data URL built from the stored
// image bytes.
type RentalView struct {
	ID          string
	OwnerID     string
	Name        string
	Surface     int
	Price       float64
	Description string
	Picture     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateRentalInput carries the multipart form fields of a rental creation.
// Picture is the raw uploaded file content, nil when no file was sent.
type CreateRentalInput struct {
	OwnerEmail  string
	Name        string
	Surface     int
	Price       float64
	Description string
	Picture     []byte
}

// UpdateRentalInput carries a rental update. OwnerEmail identifies the
// caller; only the rental's owner may update it.
type UpdateRentalInput struct {
	ID          string
	OwnerEmail  string
	Name        string
	Surface     int
	Price       float64
	Description string
}

type RentalService interface {
	List(ctx context.Context) ([]RentalView, error)
	Get(ctx context.Context, id string) (*RentalView, error)
	Create(ctx context.Context, input CreateRentalInput) error
	Update(ctx context.Context, input UpdateRentalInput) error
}
