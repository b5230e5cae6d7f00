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

// AcquireConfirmLock attempts to acquire the trip-confirmation lock for a
// user, so two concurrent confirmations cannot both start a trip.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireConfirmLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:confirm:%s", userID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseConfirmLock releases the trip-confirmation lock for a user.
func (s *LockStore) ReleaseConfirmLock(ctx context.Context, userID string) error {
	key := fmt.Sprintf("lock:confirm:%s", userID)

	return s.client.Del(ctx, key).Err()
}
