package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ecoruta/internal/domain"
	"ecoruta/internal/redis"
	"ecoruta/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PROFILE REPOSITORY
// ──────────────────────────────────────────────

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockProfileRepository creates a new mock profile repository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[string]*domain.Profile),
	}
}

// AddProfile adds a profile to the mock repository.
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Email == profile.Email || p.Username == profile.Username {
			return repository.ErrDuplicate
		}
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *profile
	return &copy, nil
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.Email == email {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if p.Username == username {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	m.profiles[profile.ID] = profile
	return nil
}

// ──────────────────────────────────────────────
// MOCK ROUTE REPOSITORY
// ──────────────────────────────────────────────

// MockRouteRepository is a mock implementation of RouteRepository.
type MockRouteRepository struct {
	mu     sync.RWMutex
	routes []*domain.RouteRecord

	// Counters for verification
	AppendCallCount int32

	// Error injection
	AppendError error
}

// NewMockRouteRepository creates a new mock route repository.
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{}
}

func (m *MockRouteRepository) Append(ctx context.Context, route *domain.RouteRecord) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *route
	m.routes = append(m.routes, &copy)
	return nil
}

func (m *MockRouteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.RouteRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.RouteRecord, 0)
	for _, r := range m.routes {
		if r.UserID == userID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountRoutes returns the number of stored routes for assertions.
func (m *MockRouteRepository) CountRoutes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.routes)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT RECORD REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRecordRepository is a mock implementation of PaymentRecordRepository.
type MockPaymentRecordRepository struct {
	mu       sync.RWMutex
	payments []*domain.PaymentRecord

	// Counters for verification
	AppendCallCount int32

	// Error injection
	AppendError     error
	ListError       error
	LastMethodError error
}

// NewMockPaymentRecordRepository creates a new mock payment record repository.
func NewMockPaymentRecordRepository() *MockPaymentRecordRepository {
	return &MockPaymentRecordRepository{}
}

func (m *MockPaymentRecordRepository) Append(ctx context.Context, payment *domain.PaymentRecord) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments = append(m.payments, &copy)
	return nil
}

func (m *MockPaymentRecordRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.PaymentRecord, 0)
	for _, p := range m.payments {
		if p.UserID == userID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPaymentRecordRepository) LastMethodByUser(ctx context.Context, userID string) (string, error) {
	if m.LastMethodError != nil {
		return "", m.LastMethodError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.payments) - 1; i >= 0; i-- {
		if m.payments[i].UserID == userID {
			return m.payments[i].Method, nil
		}
	}
	return "", repository.ErrNotFound
}

// LastPayment returns the most recent stored record for assertions.
func (m *MockPaymentRecordRepository) LastPayment() *domain.PaymentRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.payments) == 0 {
		return nil
	}
	return m.payments[len(m.payments)-1]
}

// ──────────────────────────────────────────────
// MOCK PLACE REPOSITORY
// ──────────────────────────────────────────────

// MockPlaceRepository is a mock implementation of PlaceRepository.
type MockPlaceRepository struct {
	mu     sync.RWMutex
	places []*domain.Place
}

// NewMockPlaceRepository creates a new mock place repository.
func NewMockPlaceRepository(places ...*domain.Place) *MockPlaceRepository {
	return &MockPlaceRepository{places: places}
}

func (m *MockPlaceRepository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Place, 0, len(m.places))
	for _, p := range m.places {
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockPlaceRepository) Search(ctx context.Context, query string) ([]*domain.Place, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Place, 0)
	for _, p := range m.places {
		if strings.Contains(strings.ToLower(p.Description), strings.ToLower(query)) {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK PLACE INDEX
// ──────────────────────────────────────────────

// MockPlaceIndex is an in-memory geo index with a crude distance model:
// places within ~radiusKm on either axis count as nearby.
type MockPlaceIndex struct {
	mu     sync.RWMutex
	coords map[string][2]float64

	// Error injection
	FindError error
}

// NewMockPlaceIndex creates a new mock place index.
func NewMockPlaceIndex() *MockPlaceIndex {
	return &MockPlaceIndex{coords: make(map[string][2]float64)}
}

func (m *MockPlaceIndex) Add(ctx context.Context, placeID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coords[placeID] = [2]float64{lat, lng}
	return nil
}

func (m *MockPlaceIndex) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]redis.NearbyPlace, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Roughly 111km per degree.
	maxDelta := radiusKm / 111.0
	result := make([]redis.NearbyPlace, 0)
	for id, c := range m.coords {
		dLat := c[0] - lat
		dLng := c[1] - lng
		if dLat < 0 {
			dLat = -dLat
		}
		if dLng < 0 {
			dLng = -dLng
		}
		if dLat <= maxDelta && dLng <= maxDelta {
			result = append(result, redis.NearbyPlace{ID: id, Lat: c[0], Lng: c[1]})
		}
	}
	return result, nil
}

func (m *MockPlaceIndex) Remove(ctx context.Context, placeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.coords, placeID)
	return nil
}

// CountIndexed returns the number of indexed places for assertions.
func (m *MockPlaceIndex) CountIndexed() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.coords)
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory session store.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*redis.CachedSession

	// Error injection
	PutError error
	GetError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]*redis.CachedSession),
	}
}

func (m *MockSessionStore) Put(ctx context.Context, token string, session *redis.CachedSession, ttl time.Duration) error {
	if m.PutError != nil {
		return m.PutError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*redis.CachedSession, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token], nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// CountSessions returns the number of stored sessions for assertions.
func (m *MockSessionStore) CountSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory confirm lock.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireConfirmLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[userID] {
		return false, nil
	}
	m.locks[userID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseConfirmLock(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, userID)
	return nil
}

// Hold pre-acquires the lock so the next caller is rejected.
func (m *MockLockStore) Hold(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[userID] = true
}

// ──────────────────────────────────────────────
// MOCK SCREEN STORE
// ──────────────────────────────────────────────

// MockScreenStore is an in-memory per-user screen store.
type MockScreenStore struct {
	mu      sync.RWMutex
	screens map[string]string
}

// NewMockScreenStore creates a new mock screen store.
func NewMockScreenStore() *MockScreenStore {
	return &MockScreenStore{screens: make(map[string]string)}
}

func (m *MockScreenStore) Set(ctx context.Context, userID, screen string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screens[userID] = screen
	return nil
}

func (m *MockScreenStore) Get(ctx context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.screens[userID], nil
}

// ──────────────────────────────────────────────
// RECORDING FEEDBACK SINK
// ──────────────────────────────────────────────

// RecordingSink records every announcement and vibration for assertions.
type RecordingSink struct {
	mu            sync.Mutex
	announcements []string
	vibrations    [][]int
}

// NewRecordingSink creates a new recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

func (s *RecordingSink) Announce(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements = append(s.announcements, text)
}

func (s *RecordingSink) Vibrate(ctx context.Context, pattern []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := append([]int(nil), pattern...)
	s.vibrations = append(s.vibrations, copy)
}

// Announcements returns a copy of the recorded announcements.
func (s *RecordingSink) Announcements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.announcements...)
}

// Vibrations returns a copy of the recorded vibration patterns.
func (s *RecordingSink) Vibrations() [][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([][]int, len(s.vibrations))
	for i, v := range s.vibrations {
		result[i] = append([]int(nil), v...)
	}
	return result
}
