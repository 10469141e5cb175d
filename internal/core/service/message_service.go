package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chatop/rental-api/internal/api/metrics"
	"github.com/chatop/rental-api/internal/core/domain"
	"github.com/chatop/rental-api/internal/core/ports"
)

// MessageService persists rental messages and hands them to the
// notification pipeline.
type MessageService struct {
	messages ports.MessageRepository
	rentals  ports.RentalRepository
	users    ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, rentals ports.RentalRepository, users ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, rentals: rentals, users: users, notifier: notifier, logger: logger}
}

// Create validates the referenced user and rental, stores the message, and
// enqueues a notification for the rental owner. Notification delivery is
// asynchronous; a message is never lost to a slow consumer.
func (s *MessageService) Create(ctx context.Context, input ports.CreateMessageInput) error {
	if strings.TrimSpace(input.Body) == "" || input.RentalID == "" || input.UserID == "" {
		return domain.ErrValidation
	}

	sender, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	rental, err := s.rentals.FindByID(ctx, input.RentalID)
	if err != nil {
		return err
	}

	created, err := s.messages.Create(ctx, &domain.Message{
		RentalID: rental.ID,
		UserID:   sender.ID,
		Body:     input.Body,
	})
	if err != nil {
		return err
	}

	metrics.MessagesCreatedTotal.Inc()
	s.logger.Info().Str("message_id", created.ID).Str("rental_id", rental.ID).Msg("message created")

	if s.notifier != nil {
		s.notifier.Notify(ports.MessageCreatedEvent{
			RentalID:  rental.ID,
			OwnerID:   rental.OwnerID,
			SenderID:  sender.ID,
			CreatedAt: created.CreatedAt,
		})
	}
	return nil
}
