package redis

import (
	"context"
	"time"
)

// SessionStoreInterface defines the interface for session storage.
type SessionStoreInterface interface {
	Put(ctx context.Context, token string, session *CachedSession, ttl time.Duration) error
	Get(ctx context.Context, token string) (*CachedSession, error)
	Delete(ctx context.Context, token string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireConfirmLock(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseConfirmLock(ctx context.Context, userID string) error
}

// PlaceIndexInterface defines the interface for geo place lookups.
type PlaceIndexInterface interface {
	Add(ctx context.Context, placeID string, lat, lng float64) error
	FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyPlace, error)
	Remove(ctx context.Context, placeID string) error
}

// ScreenStoreInterface defines the interface for per-user screen state.
type ScreenStoreInterface interface {
	Set(ctx context.Context, userID, screen string) error
	Get(ctx context.Context, userID string) (string, error)
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ PlaceIndexInterface   = (*PlaceIndex)(nil)
	_ ScreenStoreInterface  = (*ScreenStore)(nil)
)
