package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ecoruta/internal/domain"
	"ecoruta/internal/repository"
)

// ProfileRepository is a PostgreSQL implementation of repository.ProfileRepository.
// Column names follow the original usuarios schema.
type ProfileRepository struct {
	q Querier
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{q: db}
}

// NewProfileRepositoryWithTx creates a profile repository using a transaction.
func NewProfileRepositoryWithTx(tx *sql.Tx) *ProfileRepository {
	return &ProfileRepository{q: tx}
}

// Create persists a new profile.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO usuarios (id, nombre, apellido, usuario, correo, telefono, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Email,
		profile.Phone,
		profile.PasswordHash,
		profile.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a profile by email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getBy(ctx, "correo", email)
}

// GetByUsername retrieves a profile by username.
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getBy(ctx, "usuario", username)
}

func (r *ProfileRepository) getBy(ctx context.Context, column, value string) (*domain.Profile, error) {
	query := `
		SELECT id, nombre, apellido, usuario, correo, telefono, password_hash, created_at
		FROM usuarios WHERE ` + column + ` = $1
	`

	var profile domain.Profile
	err := r.q.QueryRowContext(ctx, query, value).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Username,
		&profile.Email,
		&profile.Phone,
		&profile.PasswordHash,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// Update updates the mutable profile fields.
func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE usuarios
		SET nombre = $2, apellido = $3, usuario = $4, telefono = $5
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Username,
		profile.Phone,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
