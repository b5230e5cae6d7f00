package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecoruta/internal/config"
	"ecoruta/internal/domain"
	internalredis "ecoruta/internal/redis"
)

const confirmLockTTL = 10 * time.Second

// TripService drives the simulated trip lifecycle. Each user has at most one
// live trip; its phases advance on a chain of timers
// (Searching -> DriverFound -> DriverArrived -> Riding -> Completed) and every
// scheduled step carries the generation it was armed for, so a timer belonging
// to a cancelled or superseded trip can never mutate a newer one.
type TripService struct {
	mu      sync.Mutex
	trips   map[string]*tripState
	nextGen uint64

	delays  config.TripConfig
	locks   internalredis.LockStoreInterface
	history *HistoryService
	voice   *VoiceService
	logger  *zap.Logger
}

// tripState is the live trip of a single user.
type tripState struct {
	request    *domain.TripRequest
	phase      domain.TripPhase
	generation uint64
	timers     []*time.Timer
}

// NewTripService creates a new TripService. locks may be nil, in which case
// confirmation relies on the in-process mutex alone.
func NewTripService(
	delays config.TripConfig,
	locks internalredis.LockStoreInterface,
	history *HistoryService,
	voice *VoiceService,
	logger *zap.Logger,
) *TripService {
	return &TripService{
		trips:   make(map[string]*tripState),
		delays:  delays,
		locks:   locks,
		history: history,
		voice:   voice,
		logger:  logger,
	}
}

// ConfirmTripRequest contains the parameters for confirming a trip.
type ConfirmTripRequest struct {
	UserID             string
	Destination        domain.Coordinates
	DestinationAddress string
	Fare               domain.FareOption
	Payment            domain.PaymentDetails
}

// Confirm validates the request, starts the driver search and returns the new
// trip. It fails if the user already has a live trip.
func (s *TripService) Confirm(ctx context.Context, req ConfirmTripRequest) (*domain.TripRequest, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if !validCoordinates(req.Destination) {
		return nil, ErrInvalidDestination
	}
	if req.Fare.ID == 0 {
		return nil, ErrInvalidFareOption
	}
	if v := ValidatePaymentDetails(req.Payment); !v.Valid {
		return nil, ErrInvalidPaymentMethod
	}

	if s.locks != nil {
		locked, err := s.locks.AcquireConfirmLock(ctx, req.UserID, confirmLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrConfirmLocked
		}
		defer func() { _ = s.locks.ReleaseConfirmLock(ctx, req.UserID) }()
	}

	trip := &domain.TripRequest{
		ID:                 uuid.New().String(),
		UserID:             req.UserID,
		Destination:        req.Destination,
		DestinationAddress: req.DestinationAddress,
		Fare:               req.Fare,
		PaymentMethod:      req.Payment.Method,
		ConfirmedAt:        time.Now(),
	}

	s.mu.Lock()
	if _, live := s.trips[req.UserID]; live {
		s.mu.Unlock()
		return nil, ErrTripInProgress
	}

	s.nextGen++
	state := &tripState{
		request:    trip,
		phase:      domain.TripPhaseSearching,
		generation: s.nextGen,
	}
	s.trips[req.UserID] = state
	s.schedule(state, req.UserID, s.delays.FoundDelay, domain.TripPhaseDriverFound)
	s.mu.Unlock()

	s.voice.Announce(ctx, guidanceSearching)
	s.logger.Info("trip confirmed",
		zap.String("user_id", req.UserID),
		zap.String("trip_id", trip.ID),
		zap.String("fare", trip.Fare.Name),
		zap.String("method", string(trip.PaymentMethod)))

	return trip, nil
}

// schedule arms the timer for the next transition. Caller must hold s.mu.
func (s *TripService) schedule(state *tripState, userID string, delay time.Duration, next domain.TripPhase) {
	gen := state.generation
	timer := time.AfterFunc(delay, func() {
		s.advance(userID, gen, next)
	})
	state.timers = append(state.timers, timer)
}

// advance applies a scheduled transition. It drops the transition silently if
// the trip it was armed for is no longer current.
func (s *TripService) advance(userID string, gen uint64, next domain.TripPhase) {
	s.mu.Lock()

	state, ok := s.trips[userID]
	if !ok || state.generation != gen {
		// Stale timer from a cancelled or superseded trip.
		s.mu.Unlock()
		return
	}

	state.phase = next
	if next == domain.TripPhaseCompleted {
		trip := state.request
		s.clearLocked(userID, state)
		s.mu.Unlock()
		s.complete(trip)
		return
	}

	switch next {
	case domain.TripPhaseDriverFound:
		s.schedule(state, userID, s.delays.ArrivedDelay, domain.TripPhaseDriverArrived)
	case domain.TripPhaseDriverArrived:
		s.schedule(state, userID, s.delays.RidingDelay, domain.TripPhaseRiding)
	case domain.TripPhaseRiding:
		s.schedule(state, userID, s.delays.CompleteDelay, domain.TripPhaseCompleted)
	}
	s.mu.Unlock()

	ctx := context.Background()
	switch next {
	case domain.TripPhaseDriverFound:
		s.voice.Vibrate(ctx, vibrateDefault)
		s.voice.Announce(ctx, guidanceDriverFound)
	case domain.TripPhaseDriverArrived:
		s.voice.Vibrate(ctx, vibrateArrived)
		s.voice.Announce(ctx, guidanceDriverArrived)
	}

	s.logger.Info("trip phase",
		zap.String("user_id", userID),
		zap.String("phase", string(next)))
}

// complete fires the completion side effects, outside the state lock: the
// trip has already returned to idle, so persistence latency cannot stall it.
func (s *TripService) complete(trip *domain.TripRequest) {
	ctx := context.Background()
	s.voice.Announce(ctx, guidanceCompleted)

	entry := s.history.RecordCompletion(ctx, trip)

	s.logger.Info("trip completed",
		zap.String("user_id", trip.UserID),
		zap.String("trip_id", trip.ID),
		zap.Int64("price", entry.Price),
		zap.String("method", entry.Method))
}

// Cancel cancels the user's live trip via the normal path. It is rejected
// while riding; the emergency path must be used then.
func (s *TripService) Cancel(ctx context.Context, userID string) error {
	s.mu.Lock()
	state, ok := s.trips[userID]
	if !ok {
		s.mu.Unlock()
		return ErrNoActiveTrip
	}
	if state.phase == domain.TripPhaseRiding {
		s.mu.Unlock()
		return ErrCancelWhileRiding
	}
	s.clearLocked(userID, state)
	s.mu.Unlock()

	s.voice.Announce(ctx, guidanceCancelled)
	s.logger.Info("trip cancelled", zap.String("user_id", userID))
	return nil
}

// EmergencyCancel cancels the live trip from any phase, including riding.
func (s *TripService) EmergencyCancel(ctx context.Context, userID string) error {
	s.mu.Lock()
	state, ok := s.trips[userID]
	if !ok {
		s.mu.Unlock()
		return ErrNoActiveTrip
	}
	s.clearLocked(userID, state)
	s.mu.Unlock()

	s.voice.Announce(ctx, guidanceEmergency)
	s.logger.Warn("trip emergency-cancelled", zap.String("user_id", userID))
	return nil
}

// Reset drops any live trip without announcements; used on sign-out.
func (s *TripService) Reset(userID string) {
	s.mu.Lock()
	if state, ok := s.trips[userID]; ok {
		s.clearLocked(userID, state)
	}
	s.mu.Unlock()
}

// clearLocked invalidates every pending transition and removes the trip.
// Caller must hold s.mu. Generations are never reused, so a callback already
// past Stop still finds its generation gone and drops out.
func (s *TripService) clearLocked(userID string, state *tripState) {
	for _, timer := range state.timers {
		timer.Stop()
	}
	state.timers = nil
	delete(s.trips, userID)
}

// Status returns the user's current phase and trip, Idle/nil when none.
func (s *TripService) Status(userID string) (domain.TripPhase, *domain.TripRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.trips[userID]
	if !ok {
		return domain.TripPhaseIdle, nil
	}

	trip := *state.request
	return state.phase, &trip
}
