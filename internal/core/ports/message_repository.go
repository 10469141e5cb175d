package ports

import (
	"context"

	"github.com/chatop/rental-api/internal/core/domain"
)

// MessageRepository persists rental messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
}
