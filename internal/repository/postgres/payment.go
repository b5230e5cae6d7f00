package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecoruta/internal/domain"
)

// PaymentRecordRepository is a PostgreSQL implementation of
// repository.PaymentRecordRepository. Column names follow the original
// historial_pagos schema.
type PaymentRecordRepository struct {
	q Querier
}

// NewPaymentRecordRepository creates a new PostgreSQL payment record repository.
func NewPaymentRecordRepository(db *sql.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{q: db}
}

// NewPaymentRecordRepositoryWithTx creates a payment record repository using a transaction.
func NewPaymentRecordRepositoryWithTx(tx *sql.Tx) *PaymentRecordRepository {
	return &PaymentRecordRepository{q: tx}
}

// Append persists a new payment record.
func (r *PaymentRecordRepository) Append(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `
		INSERT INTO historial_pagos (id, id_usuario, metodo_pago, referencia, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.UserID,
		payment.Method,
		payment.Reference,
		payment.Status,
	)

	return err
}

// ListByUser retrieves a user's payment records, most recent first.
func (r *PaymentRecordRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, id_usuario, metodo_pago, referencia, estado, created_at::text
		FROM historial_pagos WHERE id_usuario = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.PaymentRecord
	for rows.Next() {
		var payment domain.PaymentRecord
		if err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.Method,
			&payment.Reference,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

// LastMethodByUser returns the most recent payment method label, defaulting to
// cash when the user has no payment history.
func (r *PaymentRecordRepository) LastMethodByUser(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT metodo_pago FROM historial_pagos
		WHERE id_usuario = $1
		ORDER BY created_at DESC LIMIT 1
	`

	var method string
	err := r.q.QueryRowContext(ctx, query, userID).Scan(&method)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PaymentMethodCash.Label(), nil
		}
		return "", err
	}

	return method, nil
}
