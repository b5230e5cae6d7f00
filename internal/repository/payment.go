package repository

import (
	"context"

	"ecoruta/internal/domain"
)

// PaymentRecordRepository defines the persistence operations for payment history.
type PaymentRecordRepository interface {
	// Append persists a new payment record.
	Append(ctx context.Context, payment *domain.PaymentRecord) error

	// ListByUser retrieves a user's payment records, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*domain.PaymentRecord, error)

	// LastMethodByUser returns the Spanish label of the user's most recent
	// payment method, or the cash label when no record exists.
	LastMethodByUser(ctx context.Context, userID string) (string, error)
}
