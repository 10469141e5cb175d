package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

type stubRentalRepo struct {
	byID    map[string]*domain.Rental
	updated []*domain.Rental
}

func newStubRentalRepo(rentals ...*domain.Rental) *stubRentalRepo {
	r := &stubRentalRepo{byID: map[string]*domain.Rental{}}
	for _, rental := range rentals {
		r.byID[rental.ID] = rental
	}
	return r
}

func (r *stubRentalRepo) FindByID(_ context.Context, id string) (*domain.Rental, error) {
	if rental, ok := r.byID[id]; ok {
		copied := *rental
		return &copied, nil
	}
	return nil, domain.ErrRentalNotFound
}

func (r *stubRentalRepo) FindAll(_ context.Context) ([]domain.Rental, error) {
	out := make([]domain.Rental, 0, len(r.byID))
	for _, rental := range r.byID {
		out = append(out, *rental)
	}
	return out, nil
}

func (r *stubRentalRepo) Create(_ context.Context, rental *domain.Rental) (*domain.Rental, error) {
	copied := *rental
	copied.ID = "r-" + rental.Name
	r.byID[copied.ID] = &copied
	return &copied, nil
}

func (r *stubRentalRepo) Update(_ context.Context, rental *domain.Rental) error {
	if _, ok := r.byID[rental.ID]; !ok {
		return domain.ErrRentalNotFound
	}
	copied := *rental
	r.byID[rental.ID] = &copied
	r.updated = append(r.updated, &copied)
	return nil
}

type stubRentalCache struct {
	views       []ports.RentalView
	populated   bool
	invalidated int
}

func (c *stubRentalCache) Get(_ context.Context) ([]ports.RentalView, bool, error) {
	return c.views, c.populated, nil
}

func (c *stubRentalCache) Set(_ context.Context, views []ports.RentalView) error {
	c.views = views
	c.populated = true
	return nil
}

func (c *stubRentalCache) Invalidate(_ context.Context) error {
	c.views = nil
	c.populated = false
	c.invalidated++
	return nil
}

func TestRentalService_List_PicturesAsDataURL(t *testing.T) {
	picture := []byte{0xFF, 0xD8, 0xFF}
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", OwnerID: "u1", Name: "Studio", Picture: picture})
	svc := NewRentalService(rentals, newStubUserRepo(), nil, zerolog.Nop())

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	want := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(picture)
	if views[0].Picture != want {
		t.Fatalf("expected data URL %q, got %q", want, views[0].Picture)
	}
}

func TestRentalService_List_UsesCache(t *testing.T) {
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", Name: "Studio"})
	cache := &stubRentalCache{}
	svc := NewRentalService(rentals, newStubUserRepo(), cache, zerolog.Nop())

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if !cache.populated {
		t.Fatalf("expected cache to be populated after a miss")
	}

	// Mutate the repository behind the cache's back; the cached projection
	// must be served until invalidation.
	rentals.byID["r2"] = &domain.Rental{ID: "r2", Name: "Loft"}
	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected cached list of 1, got %d", len(views))
	}
}

func TestRentalService_Create_SetsOwnerAndInvalidates(t *testing.T) {
	owner := &domain.User{ID: "u1", Email: "owner@y.com"}
	rentals := newStubRentalRepo()
	cache := &stubRentalCache{populated: true}
	svc := NewRentalService(rentals, newStubUserRepo(owner), cache, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateRentalInput{
		OwnerEmail:  "owner@y.com",
		Name:        "Studio",
		Surface:     30,
		Price:       750,
		Description: "Nice place",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created, ok := rentals.byID["r-Studio"]
	if !ok {
		t.Fatalf("rental not stored")
	}
	if created.OwnerID != "u1" {
		t.Fatalf("expected owner u1, got %q", created.OwnerID)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected 1 cache invalidation, got %d", cache.invalidated)
	}
}

func TestRentalService_Create_BlankName(t *testing.T) {
	svc := NewRentalService(newStubRentalRepo(), newStubUserRepo(), nil, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateRentalInput{OwnerEmail: "owner@y.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRentalService_Update_OwnerOnly(t *testing.T) {
	owner := &domain.User{ID: "u1", Email: "owner@y.com"}
	other := &domain.User{ID: "u2", Email: "other@y.com"}
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", OwnerID: "u1", Name: "Studio"})
	svc := NewRentalService(rentals, newStubUserRepo(owner, other), nil, zerolog.Nop())

	err := svc.Update(context.Background(), ports.UpdateRentalInput{
		ID:         "r1",
		OwnerEmail: "other@y.com",
		Name:       "Hijacked",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	err = svc.Update(context.Background(), ports.UpdateRentalInput{
		ID:          "r1",
		OwnerEmail:  "owner@y.com",
		Name:        "Bigger studio",
		Surface:     45,
		Price:       900,
		Description: "Renovated",
	})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got := rentals.byID["r1"].Name; got != "Bigger studio" {
		t.Fatalf("expected updated name, got %q", got)
	}
}

func TestRentalService_Update_UnknownRental(t *testing.T) {
	svc := NewRentalService(newStubRentalRepo(), newStubUserRepo(), nil, zerolog.Nop())

	err := svc.Update(context.Background(), ports.UpdateRentalInput{ID: "missing", OwnerEmail: "a@b.com", Name: "X"})
	if !errors.Is(err, domain.ErrRentalNotFound) {
		t.Fatalf("expected ErrRentalNotFound, got %v", err)
	}
}

func TestRentalService_Get_NoPicture(t *testing.T) {
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", Name: "Studio"})
	svc := NewRentalService(rentals, newStubUserRepo(), nil, zerolog.Nop())

	view, err := svc.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Picture != "" {
		t.Fatalf("expected empty picture, got %q", view.Picture)
	}
	if strings.HasPrefix(view.Picture, "data:") {
		t.Fatalf("unexpected data URL for missing picture")
	}
}
