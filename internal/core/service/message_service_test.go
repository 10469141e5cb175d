package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

type stubMessageRepo struct {
	created []*domain.Message
}

func (r *stubMessageRepo) Create(_ context.Context, message *domain.Message) (*domain.Message, error) {
	copied := *message
	copied.ID = "m1"
	copied.CreatedAt = time.Now().UTC()
	r.created = append(r.created, &copied)
	return &copied, nil
}

type stubNotifier struct {
	events []ports.MessageCreatedEvent
}

func (n *stubNotifier) Notify(event ports.MessageCreatedEvent) {
	n.events = append(n.events, event)
}

func TestMessageService_Create_Success(t *testing.T) {
	sender := &domain.User{ID: "u2", Email: "sender@y.com"}
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", OwnerID: "u1"})
	messages := &stubMessageRepo{}
	notifier := &stubNotifier{}
	svc := NewMessageService(messages, rentals, newStubUserRepo(sender), notifier, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateMessageInput{
		RentalID: "r1",
		UserID:   "u2",
		Body:     "Hello, is this still available?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(messages.created) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(messages.created))
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.events))
	}
	event := notifier.events[0]
	if event.OwnerID != "u1" || event.SenderID != "u2" || event.RentalID != "r1" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestMessageService_Create_BlankBody(t *testing.T) {
	svc := NewMessageService(&stubMessageRepo{}, newStubRentalRepo(), newStubUserRepo(), nil, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateMessageInput{RentalID: "r1", UserID: "u1", Body: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMessageService_Create_UnknownRental(t *testing.T) {
	sender := &domain.User{ID: "u2", Email: "sender@y.com"}
	messages := &stubMessageRepo{}
	svc := NewMessageService(messages, newStubRentalRepo(), newStubUserRepo(sender), nil, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateMessageInput{RentalID: "missing", UserID: "u2", Body: "hi"})
	if !errors.Is(err, domain.ErrRentalNotFound) {
		t.Fatalf("expected ErrRentalNotFound, got %v", err)
	}
	if len(messages.created) != 0 {
		t.Fatalf("message must not be stored when the rental is unknown")
	}
}

func TestMessageService_Create_UnknownSender(t *testing.T) {
	rentals := newStubRentalRepo(&domain.Rental{ID: "r1", OwnerID: "u1"})
	svc := NewMessageService(&stubMessageRepo{}, rentals, newStubUserRepo(), nil, zerolog.Nop())

	err := svc.Create(context.Background(), ports.CreateMessageInput{RentalID: "r1", UserID: "ghost", Body: "hi"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

type stubCounter struct {
	byOwner map[string]int
}

func (c *stubCounter) Increment(_ context.Context, ownerID string) error {
	if c.byOwner == nil {
		c.byOwner = map[string]int{}
	}
	c.byOwner[ownerID]++
	return nil
}

func TestNotificationService_Process(t *testing.T) {
	counter := &stubCounter{}
	svc := NewNotificationService(counter, zerolog.Nop())

	err := svc.Process(context.Background(), ports.MessageCreatedEvent{RentalID: "r1", OwnerID: "u1", SenderID: "u2"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if counter.byOwner["u1"] != 1 {
		t.Fatalf("expected owner counter 1, got %d", counter.byOwner["u1"])
	}
}

func TestNotificationService_SkipsSelfMessages(t *testing.T) {
	counter := &stubCounter{}
	svc := NewNotificationService(counter, zerolog.Nop())

	err := svc.Process(context.Background(), ports.MessageCreatedEvent{RentalID: "r1", OwnerID: "u1", SenderID: "u1"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(counter.byOwner) != 0 {
		t.Fatalf("expected no counter update for a self-message")
	}
}
