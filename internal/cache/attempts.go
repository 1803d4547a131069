package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore counts notification attempts per order number.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAttemptStore creates a Redis backed counter store. Counters expire ttl
// after their first increment.
func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

// Increment atomically bumps the counter for orderNumber and returns its
// previous value. INCR is a single atomic primitive on the server, so two
// racing callers can never both observe a previous value of zero.
func (s *AttemptStore) Increment(ctx context.Context, orderNumber string) (int64, error) {
	key := attemptKey(orderNumber)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr failed: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return 0, fmt.Errorf("redis expire failed: %w", err)
		}
	}

	return count - 1, nil
}

func attemptKey(orderNumber string) string {
	return fmt.Sprintf("confirmation_attempts:%s", orderNumber)
}
