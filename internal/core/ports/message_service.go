package ports

import "context"

// CreateMessageInput carries a message creation request.
type CreateMessageInput struct {
	RentalID string
	UserID   string
	Body     string
}

type MessageService interface {
	Create(ctx context.Context, input CreateMessageInput) error
}
