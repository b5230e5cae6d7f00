package postgres

import (
	"context"
	"database/sql"

	"ecoruta/internal/domain"
)

// PlaceRepository is a PostgreSQL implementation of repository.PlaceRepository.
type PlaceRepository struct {
	q Querier
}

// NewPlaceRepository creates a new PostgreSQL place repository.
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{q: db}
}

// GetAll retrieves every known place.
func (r *PlaceRepository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	query := `SELECT id, descripcion, lat, lng FROM lugares ORDER BY id`
	return r.queryPlaces(ctx, query)
}

// Search retrieves places whose description matches the query, case-insensitively.
func (r *PlaceRepository) Search(ctx context.Context, search string) ([]*domain.Place, error) {
	query := `
		SELECT id, descripcion, lat, lng FROM lugares
		WHERE descripcion ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	return r.queryPlaces(ctx, query, search)
}

func (r *PlaceRepository) queryPlaces(ctx context.Context, query string, args ...any) ([]*domain.Place, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*domain.Place
	for rows.Next() {
		var place domain.Place
		if err := rows.Scan(&place.ID, &place.Description, &place.Coords.Lat, &place.Coords.Lng); err != nil {
			return nil, err
		}
		places = append(places, &place)
	}

	return places, rows.Err()
}
