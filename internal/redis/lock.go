package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquirePaymentLock attempts to acquire the payment lock for a ticket.
// Returns true if the lock was acquired, false if another payment attempt
// already holds it.
func (s *LockStore) AcquirePaymentLock(ctx context.Context, ticketID int64, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:ticket-payment:%d", ticketID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleasePaymentLock releases the payment lock for a ticket.
func (s *LockStore) ReleasePaymentLock(ctx context.Context, ticketID int64) error {
	key := fmt.Sprintf("lock:ticket-payment:%d", ticketID)

	return s.client.Del(ctx, key).Err()
}
