package repository

import (
	"context"

	"ecoruta/internal/domain"
)

// RouteRepository defines the persistence operations for completed routes.
type RouteRepository interface {
	// Append persists a new route record.
	Append(ctx context.Context, route *domain.RouteRecord) error

	// ListByUser retrieves a user's routes, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*domain.RouteRecord, error)
}
