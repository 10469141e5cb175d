package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// UnreadCounter tracks pending message notifications per rental owner.
// Key format: unread:<owner_id>
type UnreadCounter struct {
	client *redis.Client
}

func NewUnreadCounter(client *redis.Client) *UnreadCounter {
	return &UnreadCounter{client: client}
}

func (u *UnreadCounter) Increment(ctx context.Context, ownerID string) error {
	if err := u.client.Incr(ctx, u.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("unread increment: %w", err)
	}
	return nil
}

func (u *UnreadCounter) key(ownerID string) string {
	return fmt.Sprintf("unread:%s", ownerID)
}
