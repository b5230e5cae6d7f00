package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecoruta/internal/domain"
	"ecoruta/internal/repository"
)

// HistoryService owns the per-user trip history. The in-memory log is the
// source of truth for immediate feedback; the route and payment repositories
// are appended to best-effort, so a remote failure never blocks or reverses a
// completed trip.
type HistoryService struct {
	mu      sync.RWMutex
	entries map[string][]domain.TripHistoryEntry // userID -> newest first

	routeRepo   repository.RouteRepository
	paymentRepo repository.PaymentRecordRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	routeRepo repository.RouteRepository,
	paymentRepo repository.PaymentRecordRepository,
	logger *zap.Logger,
) *HistoryService {
	return &HistoryService{
		entries:     make(map[string][]domain.TripHistoryEntry),
		routeRepo:   routeRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// RecordCompletion builds the history entry for a completed trip, appends it
// to the user's local log, and persists route and payment records remotely.
// The returned entry is final regardless of the remote outcome.
func (s *HistoryService) RecordCompletion(ctx context.Context, trip *domain.TripRequest) domain.TripHistoryEntry {
	now := time.Now()

	destination := trip.DestinationAddress
	if destination == "" {
		destination = "Destino en Mapa"
	}

	entry := domain.TripHistoryEntry{
		ID:          uuid.New().String(),
		Date:        now,
		Destination: destination,
		Price:       trip.Fare.Price,
		Status:      domain.HistoryStatusCompleted,
		Method:      trip.PaymentMethod.Label(),
	}

	s.mu.Lock()
	s.entries[trip.UserID] = append([]domain.TripHistoryEntry{entry}, s.entries[trip.UserID]...)
	s.mu.Unlock()

	s.persist(ctx, trip, entry, now)

	return entry
}

// persist appends the route and payment rows. Failures are logged only.
func (s *HistoryService) persist(ctx context.Context, trip *domain.TripRequest, entry domain.TripHistoryEntry, now time.Time) {
	route := &domain.RouteRecord{
		ID:          uuid.New().String(),
		UserID:      trip.UserID,
		Origin:      "Ubicación Actual",
		Destination: entry.Destination,
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04:05"),
	}
	if err := s.routeRepo.Append(ctx, route); err != nil {
		s.logger.Warn("route append failed; trip remains completed locally",
			zap.String("user_id", trip.UserID), zap.Error(err))
	}

	payment := &domain.PaymentRecord{
		ID:        uuid.New().String(),
		UserID:    trip.UserID,
		Method:    trip.PaymentMethod.Label(),
		Reference: fmt.Sprintf("TRV-%d", now.UnixMilli()),
		Status:    domain.PaymentRecordCompleted,
	}
	if err := s.paymentRepo.Append(ctx, payment); err != nil {
		s.logger.Warn("payment append failed; trip remains completed locally",
			zap.String("user_id", trip.UserID), zap.Error(err))
	}
}

// Local returns a copy of the user's local history log, newest first.
func (s *HistoryService) Local(userID string) []domain.TripHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.TripHistoryEntry, len(s.entries[userID]))
	copy(entries, s.entries[userID])
	return entries
}

// Routes lists the user's persisted routes. A repository failure degrades to
// an empty list rather than an error surface.
func (s *HistoryService) Routes(ctx context.Context, userID string) []*domain.RouteRecord {
	routes, err := s.routeRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("route list failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return routes
}

// Payments lists the user's persisted payment records, degrading to empty on
// failure.
func (s *HistoryService) Payments(ctx context.Context, userID string) []*domain.PaymentRecord {
	payments, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("payment list failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	return payments
}

// LastPaymentMethod returns the label of the user's most recent payment
// method, defaulting to cash.
func (s *HistoryService) LastPaymentMethod(ctx context.Context, userID string) string {
	method, err := s.paymentRepo.LastMethodByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("last payment method lookup failed", zap.String("user_id", userID), zap.Error(err))
		return domain.PaymentMethodCash.Label()
	}
	return method
}
