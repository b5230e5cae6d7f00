package repository

import (
	"context"

	"ecoruta/internal/domain"
)

// PlaceRepository defines the persistence operations for suggested places.
type PlaceRepository interface {
	// GetAll retrieves every known place.
	GetAll(ctx context.Context) ([]*domain.Place, error)

	// Search retrieves places whose description matches the query.
	Search(ctx context.Context, query string) ([]*domain.Place, error)
}
