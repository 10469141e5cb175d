package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

type stubMessageService struct {
	createFn func(ctx context.Context, input ports.CreateMessageInput) error
}

func (s *stubMessageService) Create(ctx context.Context, input ports.CreateMessageInput) error {
	return s.createFn(ctx, input)
}

func TestMessageHandler_Create_Success(t *testing.T) {
	stub := &stubMessageService{
		createFn: func(ctx context.Context, input ports.CreateMessageInput) error {
			if input.RentalID != "r1" || input.UserID != "u1" || input.Body != "hello" {
				t.Fatalf("unexpected input %+v", input)
			}
			return nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/api/messages", `{"rental_id":"r1","user_id":"u1","message":"hello"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMessageHandler_Create_MissingFields(t *testing.T) {
	stub := &stubMessageService{
		createFn: func(ctx context.Context, input ports.CreateMessageInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewMessageHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/messages", `{"rental_id":"r1"}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestMessageHandler_Create_UnknownRental(t *testing.T) {
	stub := &stubMessageService{
		createFn: func(ctx context.Context, input ports.CreateMessageInput) error {
			return domain.ErrRentalNotFound
		},
	}
	h := NewMessageHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/api/messages", `{"rental_id":"missing","user_id":"u1","message":"hi"}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown rental, got %v", err)
	}
}
