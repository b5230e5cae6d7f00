package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ecoruta/internal/domain"
	"ecoruta/internal/service"
)

func TestHistory_LastPaymentMethodDefaultsToCash(t *testing.T) {
	t.Parallel()

	payments := NewMockPaymentRecordRepository()
	history := service.NewHistoryService(NewMockRouteRepository(), payments, zap.NewNop())
	ctx := context.Background()

	// No records yet.
	if got := history.LastPaymentMethod(ctx, "user-1"); got != "Efectivo" {
		t.Errorf("expected Efectivo default, got %s", got)
	}

	if err := payments.Append(ctx, &domain.PaymentRecord{
		ID:     "pay-1",
		UserID: "user-1",
		Method: "Nequi",
		Status: domain.PaymentRecordCompleted,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := history.LastPaymentMethod(ctx, "user-1"); got != "Nequi" {
		t.Errorf("expected Nequi, got %s", got)
	}

	// Lookup failures degrade to the default too.
	payments.LastMethodError = errors.New("connection refused")
	if got := history.LastPaymentMethod(ctx, "user-1"); got != "Efectivo" {
		t.Errorf("expected Efectivo on failure, got %s", got)
	}
}

func TestHistory_ListingsDegradeToEmpty(t *testing.T) {
	t.Parallel()

	payments := NewMockPaymentRecordRepository()
	payments.ListError = errors.New("connection refused")
	history := service.NewHistoryService(NewMockRouteRepository(), payments, zap.NewNop())

	if got := history.Payments(context.Background(), "user-1"); len(got) != 0 {
		t.Errorf("expected empty list on failure, got %d", len(got))
	}
	if got := history.Local("unknown-user"); len(got) != 0 {
		t.Errorf("expected empty local history, got %d", len(got))
	}
}
