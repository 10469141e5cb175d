package service

import (
	"context"
	"encoding/base64"

	"github.com/rs/zerolog"

	"github.com/chatop/rental-api/internal/api/metrics"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

// RentalService implements listing, lookup, creation and update of rentals.
// The list projection is cached; any write invalidates the cache.
type RentalService struct {
	rentals ports.RentalRepository
	users   ports.UserRepository
	cache   ports.RentalCache
	logger  zerolog.Logger
}

func NewRentalService(rentals ports.RentalRepository, users ports.UserRepository, cache ports.RentalCache, logger zerolog.Logger) *RentalService {
	return &RentalService{rentals: rentals, users: users, cache: cache, logger: logger}
}

// List returns all rentals, served from the cache when possible.
func (s *RentalService) List(ctx context.Context) ([]ports.RentalView, error) {
	if s.cache != nil {
		views, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("rental list cache read failed")
		} else if ok {
			metrics.RentalListCacheTotal.WithLabelValues("hit").Inc()
			return views, nil
		} else {
			metrics.RentalListCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.RentalView, 0, len(rentals))
	for i := range rentals {
		views = append(views, toView(&rentals[i]))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, views); err != nil {
			s.logger.Warn().Err(err).Msg("rental list cache write failed")
		}
	}
	return views, nil
}

// Get returns a single rental by id.
func (s *RentalService) Get(ctx context.Context, id string) (*ports.RentalView, error) {
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(rental)
	return &view, nil
}

// Create stores a new rental owned by the user identified by OwnerEmail.
func (s *RentalService) Create(ctx context.Context, input ports.CreateRentalInput) error {
	if input.Name == "" {
		return domain.ErrValidation
	}

	owner, err := s.users.FindByEmail(ctx, input.OwnerEmail)
	if err != nil {
		return err
	}

	rental := &domain.Rental{
		OwnerID:     owner.ID,
		Name:        input.Name,
		Surface:     input.Surface,
		Price:       input.Price,
		Description: input.Description,
		Picture:     input.Picture,
	}
	if _, err := s.rentals.Create(ctx, rental); err != nil {
		return err
	}

	metrics.RentalsCreatedTotal.Inc()
	s.logger.Info().Str("owner_id", owner.ID).Str("name", input.Name).Msg("rental created")
	s.invalidate(ctx)
	return nil
}

// Update modifies a rental. Only the owner may update it.
func (s *RentalService) Update(ctx context.Context, input ports.UpdateRentalInput) error {
	if input.Name == "" {
		return domain.ErrValidation
	}

	rental, err := s.rentals.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}

	caller, err := s.users.FindByEmail(ctx, input.OwnerEmail)
	if err != nil {
		return err
	}
	if rental.OwnerID != caller.ID {
		return domain.ErrForbidden
	}

	rental.Name = input.Name
	rental.Surface = input.Surface
	rental.Price = input.Price
	rental.Description = input.Description

	if err := s.rentals.Update(ctx, rental); err != nil {
		return err
	}

	s.logger.Info().Str("rental_id", rental.ID).Msg("rental updated")
	s.invalidate(ctx)
	return nil
}

func (s *RentalService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("rental list cache invalidation failed")
	}
}

// toView projects a rental for the API, rendering the stored picture bytes
// as a data URL the way the original frontend expects them.
func toView(r *domain.Rental) ports.RentalView {
	view := ports.RentalView{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Surface:     r.Surface,
		Price:       r.Price,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if len(r.Picture) > 0 {
		view.Picture = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(r.Picture)
	}
	return view
}
