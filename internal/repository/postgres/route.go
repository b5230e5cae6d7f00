package postgres

import (
	"context"
	"database/sql"

	"ecoruta/internal/domain"
)

// RouteRepository is a PostgreSQL implementation of repository.RouteRepository.
// Column names follow the original rutas schema.
type RouteRepository struct {
	q Querier
}

// NewRouteRepository creates a new PostgreSQL route repository.
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{q: db}
}

// NewRouteRepositoryWithTx creates a route repository using a transaction.
func NewRouteRepositoryWithTx(tx *sql.Tx) *RouteRepository {
	return &RouteRepository{q: tx}
}

// Append persists a new route record.
func (r *RouteRepository) Append(ctx context.Context, route *domain.RouteRecord) error {
	query := `
		INSERT INTO rutas (id, id_usuario, origen, destino, fecha, hora)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		route.ID,
		route.UserID,
		route.Origin,
		route.Destination,
		route.Date,
		route.Time,
	)

	return err
}

// ListByUser retrieves a user's routes, most recent first.
func (r *RouteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RouteRecord, error) {
	query := `
		SELECT id, id_usuario, origen, destino, fecha, hora
		FROM rutas WHERE id_usuario = $1
		ORDER BY fecha DESC, hora DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.RouteRecord
	for rows.Next() {
		var route domain.RouteRecord
		if err := rows.Scan(
			&route.ID,
			&route.UserID,
			&route.Origin,
			&route.Destination,
			&route.Date,
			&route.Time,
		); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}

	return routes, rows.Err()
}
