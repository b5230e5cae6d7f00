package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	screenKeyPrefix = "screen:"
	screenTTL       = 7 * 24 * time.Hour
)

// ScreenStore keeps each user's current screen so navigation survives
// reconnects.
type ScreenStore struct {
	client *redis.Client
}

// NewScreenStore creates a new ScreenStore.
func NewScreenStore(client *redis.Client) *ScreenStore {
	return &ScreenStore{client: client}
}

// Set stores the current screen for a user.
func (s *ScreenStore) Set(ctx context.Context, userID, screen string) error {
	return s.client.Set(ctx, screenKeyPrefix+userID, screen, screenTTL).Err()
}

// Get retrieves the current screen for a user. Returns "" on a miss.
func (s *ScreenStore) Get(ctx context.Context, userID string) (string, error) {
	screen, err := s.client.Get(ctx, screenKeyPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return screen, nil
}
