package repository

import (
	"context"

	"ecoruta/internal/domain"
)

// ProfileRepository defines the persistence operations for user profiles.
type ProfileRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by ID.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)

	// GetByEmail retrieves a profile by email.
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// GetByUsername retrieves a profile by username.
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)

	// Update updates the mutable profile fields.
	Update(ctx context.Context, profile *domain.Profile) error
}
