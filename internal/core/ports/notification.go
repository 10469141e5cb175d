package ports

import (
	"context"
	"time"
)

// MessageCreatedEvent is emitted after a message is persisted. Events for
// the same rental are delivered in order.
type MessageCreatedEvent struct {
	RentalID  string
	OwnerID   string
	SenderID  string
	CreatedAt time.Time
}

// Notifier hands a message event to the asynchronous delivery pipeline.
type Notifier interface {
	Notify(event MessageCreatedEvent)
}

// NotificationService processes a single message event, typically by
// bumping the rental owner's unread counter.
type NotificationService interface {
	Process(ctx context.Context, event MessageCreatedEvent) error
}

// UnreadCounter tracks pending message notifications per rental owner.
type UnreadCounter interface {
	Increment(ctx context.Context, ownerID string) error
}
