package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatop/rental-api/internal/api/metrics"
	"github.com/chatop/rental-api/internal/core/ports"
)

// NotificationService turns message events into per-owner unread counters.
type NotificationService struct {
	counter ports.UnreadCounter
	logger  zerolog.Logger
}

func NewNotificationService(counter ports.UnreadCounter, logger zerolog.Logger) *NotificationService {
	return &NotificationService{counter: counter, logger: logger}
}

// Process bumps the unread counter of the rental owner. Self-messages are
// skipped: an owner commenting on their own listing needs no notification.
func (s *NotificationService) Process(ctx context.Context, event ports.MessageCreatedEvent) error {
	start := time.Now()

	if event.SenderID == event.OwnerID {
		return nil
	}

	if err := s.counter.Increment(ctx, event.OwnerID); err != nil {
		metrics.NotificationProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.NotificationProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	s.logger.Debug().Str("owner_id", event.OwnerID).Str("rental_id", event.RentalID).Msg("notification recorded")
	return nil
}
