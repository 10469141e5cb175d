package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatop/rental-api/internal/core/ports"
)

const (
	rentalListKey = "rentals:list"
	rentalListTTL = time.Minute
)

// RentalCache holds the projected rental list in Redis for the read-heavy
// listing endpoint. Writers invalidate it; stale reads last at most
// rentalListTTL.
type RentalCache struct {
	client *redis.Client
}

func NewRentalCache(client *redis.Client) *RentalCache {
	return &RentalCache{client: client}
}

func (c *RentalCache) Get(ctx context.Context) ([]ports.RentalView, bool, error) {
	raw, err := c.client.Get(ctx, rentalListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("rental cache get: %w", err)
	}

	var views []ports.RentalView
	if err := json.Unmarshal(raw, &views); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return views, true, nil
}

func (c *RentalCache) Set(ctx context.Context, views []ports.RentalView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("rental cache marshal: %w", err)
	}
	return c.client.Set(ctx, rentalListKey, raw, rentalListTTL).Err()
}

func (c *RentalCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, rentalListKey).Err()
}
