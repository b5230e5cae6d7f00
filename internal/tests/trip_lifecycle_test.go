package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"ecoruta/internal/config"
	"ecoruta/internal/domain"
	"ecoruta/internal/service"
)

// fastDelays compresses the transition chain so a full trip runs in
// well under a second.
func fastDelays() config.TripConfig {
	return config.TripConfig{
		FoundDelay:    20 * time.Millisecond,
		ArrivedDelay:  20 * time.Millisecond,
		RidingDelay:   20 * time.Millisecond,
		CompleteDelay: 20 * time.Millisecond,
	}
}

type tripFixture struct {
	trips    *service.TripService
	history  *service.HistoryService
	routes   *MockRouteRepository
	payments *MockPaymentRecordRepository
	sink     *RecordingSink
	locks    *MockLockStore
}

func newTripFixture(t *testing.T, delays config.TripConfig) *tripFixture {
	t.Helper()

	routes := NewMockRouteRepository()
	payments := NewMockPaymentRecordRepository()
	sink := NewRecordingSink()
	locks := NewMockLockStore()
	logger := zap.NewNop()

	voice := service.NewVoiceService(sink, logger)
	history := service.NewHistoryService(routes, payments, logger)
	trips := service.NewTripService(delays, locks, history, voice, logger)

	return &tripFixture{
		trips:    trips,
		history:  history,
		routes:   routes,
		payments: payments,
		sink:     sink,
		locks:    locks,
	}
}

func confirmCashTrip(t *testing.T, f *tripFixture, userID string) *domain.TripRequest {
	t.Helper()

	trip, err := f.trips.Confirm(context.Background(), service.ConfirmTripRequest{
		UserID:             userID,
		Destination:        domain.Coordinates{Lat: 4.6482, Lng: -74.0936},
		DestinationAddress: "Centro Comercial Gran Estación",
		Fare:               domain.FareOption{ID: 1, Name: "Uber", Price: 15000, WaitTime: 4 * time.Minute, Comfort: "Confort"},
		Payment:            domain.PaymentDetails{Method: domain.PaymentMethodCash},
	})
	if err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}
	return trip
}

// waitForPhase polls until the trip reaches the phase or the deadline passes.
func waitForPhase(t *testing.T, f *tripFixture, userID string, want domain.TripPhase, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		phase, _ := f.trips.Status(userID)
		if phase == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	phase, _ := f.trips.Status(userID)
	t.Fatalf("expected phase %s within %v, still at %s", want, timeout, phase)
}

func TestTrip_FullLifecycleCompletes(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	trip := confirmCashTrip(t, f, "user-1")

	if trip.ID == "" {
		t.Fatal("expected a trip ID")
	}

	phase, _ := f.trips.Status("user-1")
	if phase != domain.TripPhaseSearching {
		t.Fatalf("expected SEARCHING right after confirm, got %s", phase)
	}

	waitForPhase(t, f, "user-1", domain.TripPhaseDriverFound, 200*time.Millisecond)
	waitForPhase(t, f, "user-1", domain.TripPhaseDriverArrived, 200*time.Millisecond)
	waitForPhase(t, f, "user-1", domain.TripPhaseRiding, 200*time.Millisecond)

	// Completion clears the live trip; status returns to idle.
	waitForPhase(t, f, "user-1", domain.TripPhaseIdle, 200*time.Millisecond)

	// Give the completion side effects a moment to land.
	time.Sleep(50 * time.Millisecond)

	entries := f.history.Local("user-1")
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Status != domain.HistoryStatusCompleted {
		t.Errorf("expected status %s, got %s", domain.HistoryStatusCompleted, entry.Status)
	}
	if entry.Price != 15000 {
		t.Errorf("expected price 15000, got %d", entry.Price)
	}
	if entry.Method != "Efectivo" {
		t.Errorf("expected method Efectivo, got %s", entry.Method)
	}
	if entry.Destination != "Centro Comercial Gran Estación" {
		t.Errorf("unexpected destination %s", entry.Destination)
	}
}

func TestTrip_CompletionPersistsRouteAndPayment(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	confirmCashTrip(t, f, "user-1")

	waitForPhase(t, f, "user-1", domain.TripPhaseIdle, 500*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if f.routes.CountRoutes() != 1 {
		t.Errorf("expected 1 route record, got %d", f.routes.CountRoutes())
	}
	payment := f.payments.LastPayment()
	if payment == nil {
		t.Fatal("expected a payment record")
	}
	if payment.Method != "Efectivo" {
		t.Errorf("expected payment method Efectivo, got %s", payment.Method)
	}
	if payment.Status != domain.PaymentRecordCompleted {
		t.Errorf("expected payment status %s, got %s", domain.PaymentRecordCompleted, payment.Status)
	}
}

func TestTrip_RemoteFailureDoesNotReverseCompletion(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	f.routes.AppendError = errors.New("connection refused")
	f.payments.AppendError = errors.New("connection refused")

	confirmCashTrip(t, f, "user-1")
	waitForPhase(t, f, "user-1", domain.TripPhaseIdle, 500*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	entries := f.history.Local("user-1")
	if len(entries) != 1 {
		t.Fatalf("expected local history despite remote failures, got %d entries", len(entries))
	}
	if entries[0].Status != domain.HistoryStatusCompleted {
		t.Errorf("expected completed entry, got %s", entries[0].Status)
	}
}

func TestTrip_CancelStopsPendingTransitions(t *testing.T) {
	t.Parallel()

	delays := fastDelays()
	delays.FoundDelay = 50 * time.Millisecond
	f := newTripFixture(t, delays)
	confirmCashTrip(t, f, "user-1")

	if err := f.trips.Cancel(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	phase, trip := f.trips.Status("user-1")
	if phase != domain.TripPhaseIdle {
		t.Fatalf("expected IDLE after cancel, got %s", phase)
	}
	if trip != nil {
		t.Fatal("expected no trip after cancel")
	}

	// Sleep past every scheduled delay; nothing may fire for the dead trip.
	time.Sleep(300 * time.Millisecond)

	phase, _ = f.trips.Status("user-1")
	if phase != domain.TripPhaseIdle {
		t.Fatalf("stale timer advanced a cancelled trip to %s", phase)
	}
	if entries := f.history.Local("user-1"); len(entries) != 0 {
		t.Fatalf("cancelled trip must not appear in history, got %d entries", len(entries))
	}
	if f.routes.CountRoutes() != 0 {
		t.Errorf("cancelled trip must not persist a route")
	}
}

func TestTrip_CancelRejectedWhileRiding(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	confirmCashTrip(t, f, "user-1")
	waitForPhase(t, f, "user-1", domain.TripPhaseRiding, 500*time.Millisecond)

	err := f.trips.Cancel(context.Background(), "user-1")
	if !errors.Is(err, service.ErrCancelWhileRiding) {
		t.Fatalf("expected ErrCancelWhileRiding, got %v", err)
	}

	// Emergency path works from the riding phase.
	if err := f.trips.EmergencyCancel(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected emergency cancel error: %v", err)
	}
	phase, _ := f.trips.Status("user-1")
	if phase != domain.TripPhaseIdle {
		t.Fatalf("expected IDLE after emergency cancel, got %s", phase)
	}
	if entries := f.history.Local("user-1"); len(entries) != 0 {
		t.Fatalf("emergency-cancelled trip must not appear in history, got %d entries", len(entries))
	}
}

func TestTrip_CancelWithoutActiveTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())

	if err := f.trips.Cancel(context.Background(), "user-1"); !errors.Is(err, service.ErrNoActiveTrip) {
		t.Fatalf("expected ErrNoActiveTrip, got %v", err)
	}
	if err := f.trips.EmergencyCancel(context.Background(), "user-1"); !errors.Is(err, service.ErrNoActiveTrip) {
		t.Fatalf("expected ErrNoActiveTrip, got %v", err)
	}
}

func TestTrip_SecondConfirmRejectedWhileLive(t *testing.T) {
	t.Parallel()

	delays := fastDelays()
	delays.FoundDelay = 200 * time.Millisecond
	f := newTripFixture(t, delays)
	confirmCashTrip(t, f, "user-1")

	_, err := f.trips.Confirm(context.Background(), service.ConfirmTripRequest{
		UserID:      "user-1",
		Destination: domain.Coordinates{Lat: 4.6, Lng: -74.1},
		Fare:        domain.FareOption{ID: 2, Name: "DiDi", Price: 13000},
		Payment:     domain.PaymentDetails{Method: domain.PaymentMethodCash},
	})
	if !errors.Is(err, service.ErrTripInProgress) {
		t.Fatalf("expected ErrTripInProgress, got %v", err)
	}

	// A different user is unaffected.
	if _, err := f.trips.Confirm(context.Background(), service.ConfirmTripRequest{
		UserID:      "user-2",
		Destination: domain.Coordinates{Lat: 4.6, Lng: -74.1},
		Fare:        domain.FareOption{ID: 3, Name: "Taxi", Price: 11000},
		Payment:     domain.PaymentDetails{Method: domain.PaymentMethodCash},
	}); err != nil {
		t.Fatalf("unexpected error for second user: %v", err)
	}
}

func TestTrip_ConfirmRejectedWhileLockHeld(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	f.locks.Hold("user-1")

	_, err := f.trips.Confirm(context.Background(), service.ConfirmTripRequest{
		UserID:      "user-1",
		Destination: domain.Coordinates{Lat: 4.6, Lng: -74.1},
		Fare:        domain.FareOption{ID: 1, Name: "Uber", Price: 15000},
		Payment:     domain.PaymentDetails{Method: domain.PaymentMethodCash},
	})
	if !errors.Is(err, service.ErrConfirmLocked) {
		t.Fatalf("expected ErrConfirmLocked, got %v", err)
	}
}

func TestTrip_ConfirmValidation(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	ctx := context.Background()
	validFare := domain.FareOption{ID: 1, Name: "Uber", Price: 15000}
	validDest := domain.Coordinates{Lat: 4.6, Lng: -74.1}
	cash := domain.PaymentDetails{Method: domain.PaymentMethodCash}

	if _, err := f.trips.Confirm(ctx, service.ConfirmTripRequest{
		Destination: validDest, Fare: validFare, Payment: cash,
	}); !errors.Is(err, service.ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}

	if _, err := f.trips.Confirm(ctx, service.ConfirmTripRequest{
		UserID: "u", Destination: domain.Coordinates{Lat: 91, Lng: 0}, Fare: validFare, Payment: cash,
	}); !errors.Is(err, service.ErrInvalidDestination) {
		t.Errorf("expected ErrInvalidDestination, got %v", err)
	}

	if _, err := f.trips.Confirm(ctx, service.ConfirmTripRequest{
		UserID: "u", Destination: validDest, Payment: cash,
	}); !errors.Is(err, service.ErrInvalidFareOption) {
		t.Errorf("expected ErrInvalidFareOption, got %v", err)
	}

	if _, err := f.trips.Confirm(ctx, service.ConfirmTripRequest{
		UserID: "u", Destination: validDest, Fare: validFare,
		Payment: domain.PaymentDetails{Method: domain.PaymentMethodNequi},
	}); !errors.Is(err, service.ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod for incomplete nequi form, got %v", err)
	}
}

func TestTrip_ResetDropsTripSilently(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	confirmCashTrip(t, f, "user-1")

	announced := len(f.sink.Announcements())
	f.trips.Reset("user-1")

	phase, _ := f.trips.Status("user-1")
	if phase != domain.TripPhaseIdle {
		t.Fatalf("expected IDLE after reset, got %s", phase)
	}
	if got := len(f.sink.Announcements()); got != announced {
		t.Errorf("reset must not announce, got %d extra announcements", got-announced)
	}

	time.Sleep(200 * time.Millisecond)
	if entries := f.history.Local("user-1"); len(entries) != 0 {
		t.Fatalf("reset trip must not complete, got %d history entries", len(entries))
	}
}

func TestTrip_NewTripAfterCancelRunsCleanly(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	confirmCashTrip(t, f, "user-1")

	if err := f.trips.Cancel(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}

	// Immediately confirm again; timers from the first trip must not touch it.
	confirmCashTrip(t, f, "user-1")
	waitForPhase(t, f, "user-1", domain.TripPhaseIdle, 500*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	entries := f.history.Local("user-1")
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 history entry from the second trip, got %d", len(entries))
	}
}

func TestTrip_FeedbackFiresPerPhase(t *testing.T) {
	t.Parallel()

	f := newTripFixture(t, fastDelays())
	confirmCashTrip(t, f, "user-1")
	waitForPhase(t, f, "user-1", domain.TripPhaseIdle, 500*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	announcements := f.sink.Announcements()
	if len(announcements) != 4 {
		t.Fatalf("expected 4 announcements (confirm, found, arrived, completed), got %d: %v",
			len(announcements), announcements)
	}

	vibrations := f.sink.Vibrations()
	if len(vibrations) != 2 {
		t.Fatalf("expected 2 vibrations (found, arrived), got %d", len(vibrations))
	}
	if len(vibrations[1]) != 2 || vibrations[1][1] != 500 {
		t.Errorf("expected arrival vibration [0 500], got %v", vibrations[1])
	}
}
