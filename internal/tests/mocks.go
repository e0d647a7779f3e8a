package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"transit/internal/domain"
	"transit/internal/redis"
	"transit/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK ROUTE REPOSITORY
// ──────────────────────────────────────────────

// MockRouteRepository is a mock implementation of RouteRepository.
type MockRouteRepository struct {
	mu     sync.RWMutex
	routes map[int64]*domain.Route
	nextID int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
}

// NewMockRouteRepository creates a new mock route repository.
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{
		routes: make(map[int64]*domain.Route),
	}
}

// AddRoute adds a route to the mock repository.
func (m *MockRouteRepository) AddRoute(route *domain.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route.ID] = route
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	route.ID = m.nextID
	m.routes[route.ID] = route
	return nil
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	route, ok := m.routes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *route
	return &copy, nil
}

func (m *MockRouteRepository) GetAll(ctx context.Context) ([]*domain.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Route, 0, len(m.routes))
	for _, r := range m.routes {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRouteRepository) SetAssignedDriver(ctx context.Context, routeID, driverID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.routes[routeID]
	if !ok {
		return repository.ErrNotFound
	}
	route.AssignedDriverID = driverID
	return nil
}

func (m *MockRouteRepository) SetAssignedVehicle(ctx context.Context, routeID, vehicleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.routes[routeID]
	if !ok {
		return repository.ErrNotFound
	}
	route.AssignedVehicleID = vehicleID
	return nil
}

// GetRoute returns the route by ID (for test assertions).
func (m *MockRouteRepository) GetRoute(id int64) *domain.Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.routes[id]
}

// ──────────────────────────────────────────────
// MOCK ROUTE STOP REPOSITORY
// ──────────────────────────────────────────────

// MockRouteStopRepository is a mock implementation of RouteStopRepository.
type MockRouteStopRepository struct {
	mu     sync.RWMutex
	stops  map[int64]*domain.RouteStop
	nextID int64

	// Error injection
	GetPairError error
}

// NewMockRouteStopRepository creates a new mock stop repository.
func NewMockRouteStopRepository() *MockRouteStopRepository {
	return &MockRouteStopRepository{
		stops: make(map[int64]*domain.RouteStop),
	}
}

// AddStop adds a stop to the mock repository.
func (m *MockRouteStopRepository) AddStop(stop *domain.RouteStop) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops[stop.ID] = stop
}

func (m *MockRouteStopRepository) Create(ctx context.Context, stop *domain.RouteStop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stop.ID = m.nextID
	m.stops[stop.ID] = stop
	return nil
}

func (m *MockRouteStopRepository) GetByRoute(ctx context.Context, routeID int64) ([]*domain.RouteStop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RouteStop
	for _, s := range m.stops {
		if s.RouteID == routeID {
			copy := *s
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StopOrder < result[j].StopOrder
	})
	return result, nil
}

func (m *MockRouteStopRepository) GetPair(ctx context.Context, routeID, stopIDA, stopIDB int64) ([]*domain.RouteStop, error) {
	if m.GetPairError != nil {
		return nil, m.GetPairError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RouteStop
	for _, s := range m.stops {
		if s.RouteID == routeID && (s.ID == stopIDA || s.ID == stopIDB) {
			copy := *s
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StopOrder < result[j].StopOrder
	})
	return result, nil
}

func (m *MockRouteStopRepository) Delete(ctx context.Context, routeID, stopID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stop, ok := m.stops[stopID]
	if !ok || stop.RouteID != routeID {
		return repository.ErrNotFound
	}
	delete(m.stops, stopID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[int64]*domain.Vehicle
	nextID   int64
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[int64]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	vehicle.ID = m.nextID
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) SetAssignedDriver(ctx context.Context, vehicleID, driverID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[vehicleID]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.AssignedDriverID = driverID
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[int64]*domain.Driver
	nextID  int64

	// Counters for verification
	SetAssignedLineCallCount int32

	// Error injection
	SetAssignedLineError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[int64]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	driver.ID = m.nextID
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) SetAssignedLine(ctx context.Context, driverID, routeID int64) error {
	atomic.AddInt32(&m.SetAssignedLineCallCount, 1)
	if m.SetAssignedLineError != nil {
		return m.SetAssignedLineError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[driverID]
	if !ok {
		return repository.ErrNotFound
	}
	driver.AssignedLineID = routeID
	return nil
}

// GetDriver returns the driver by ID (for test assertions).
func (m *MockDriverRepository) GetDriver(id int64) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Phone == phone {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK TICKET REPOSITORY
// ──────────────────────────────────────────────

// MockTicketRepository is a mock implementation of TicketRepository.
type MockTicketRepository struct {
	mu      sync.RWMutex
	tickets map[int64]*domain.Ticket
	nextID  int64

	// Counters for verification
	MarkPaidCallCount int32

	// Error injection
	MarkPaidError          error
	StartJourneyError      error
	InProgressByVehicleErr error
}

// NewMockTicketRepository creates a new mock ticket repository.
func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{
		tickets: make(map[int64]*domain.Ticket),
	}
}

// AddTicket adds a ticket to the mock repository.
func (m *MockTicketRepository) AddTicket(ticket *domain.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[ticket.ID] = ticket
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ticket.ID = m.nextID
	m.tickets[ticket.ID] = ticket
	return nil
}

func (m *MockTicketRepository) SetQRCode(ctx context.Context, ticketID int64, qrCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	ticket.QRCode = qrCode
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ticket
	return &copy, nil
}

func (m *MockTicketRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tickets {
		if t.QRCode == qrCode {
			copy := *t
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTicketRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ticket
	for _, t := range m.tickets {
		if t.UserID == userID {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTicketRepository) MarkPaid(ctx context.Context, ticketID int64, method domain.PaymentMethod, transactionID string) error {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	if m.MarkPaidError != nil {
		return m.MarkPaidError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.PaymentMethod = method
	ticket.TransactionID = transactionID
	return nil
}

func (m *MockTicketRepository) ConfirmBoarding(ctx context.Context, ticketID int64, boardedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	ticket.BoardingStatus = domain.BoardingStatusConfirmed
	ticket.JourneyStatus = domain.JourneyStatusInProgress
	ticket.BoardedAt = boardedAt
	return nil
}

func (m *MockTicketRepository) StartJourneyForVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error) {
	if m.StartJourneyError != nil {
		return nil, m.StartJourneyError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Ticket
	for _, t := range m.tickets {
		if t.VehicleID == vehicleID &&
			t.PaymentStatus == domain.PaymentStatusCompleted &&
			t.JourneyStatus == domain.JourneyStatusPending {
			t.JourneyStatus = domain.JourneyStatusInProgress
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTicketRepository) InProgressByVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error) {
	if m.InProgressByVehicleErr != nil {
		return nil, m.InProgressByVehicleErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ticket
	for _, t := range m.tickets {
		if t.VehicleID == vehicleID && t.JourneyStatus == domain.JourneyStatusInProgress {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

// GetTicket returns the ticket by ID (for test assertions).
func (m *MockTicketRepository) GetTicket(id int64) *domain.Ticket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tickets[id]
}

// ──────────────────────────────────────────────
// MOCK NOTIFICATION REPOSITORY
// ──────────────────────────────────────────────

// MockNotificationRepository is a mock implementation of
// NotificationRepository.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification
	nextID        int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error

	// FailForUser makes Create fail only for one specific user.
	FailForUser int64
}

// NewMockNotificationRepository creates a new mock notification repository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	if m.FailForUser != 0 && notification.UserID == m.FailForUser {
		return errors.New("notification store unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	notification.ID = m.nextID
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *MockNotificationRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			copy := *n
			result = append(result, &copy)
		}
	}
	return result, nil
}

// CountForUser returns how many notifications a user received.
func (m *MockNotificationRepository) CountForUser(userID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count
}

// CountAll returns the total number of stored notifications.
func (m *MockNotificationRepository) CountAll() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notifications)
}

// ──────────────────────────────────────────────
// MOCK LOYALTY REPOSITORY
// ──────────────────────────────────────────────

// MockLoyaltyRepository is a mock implementation of LoyaltyRepository.
type MockLoyaltyRepository struct {
	mu     sync.RWMutex
	points map[int64]int64

	// Error injection
	AddError error
}

// NewMockLoyaltyRepository creates a new mock loyalty repository.
func NewMockLoyaltyRepository() *MockLoyaltyRepository {
	return &MockLoyaltyRepository{
		points: make(map[int64]int64),
	}
}

func (m *MockLoyaltyRepository) Add(ctx context.Context, userID int64, points int64) error {
	if m.AddError != nil {
		return m.AddError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[userID] += points
	return nil
}

func (m *MockLoyaltyRepository) GetByUser(ctx context.Context, userID int64) (*domain.LoyaltyAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	points, ok := m.points[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.LoyaltyAccount{UserID: userID, Points: points}, nil
}

// Points returns the balance for assertions.
func (m *MockLoyaltyRepository) Points(userID int64) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.points[userID]
}

// ──────────────────────────────────────────────
// MOCK REVIEW REPOSITORY
// ──────────────────────────────────────────────

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews []*domain.Review
	nextID  int64
}

// NewMockReviewRepository creates a new mock review repository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	review.ID = m.nextID
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *MockReviewRepository) GetByRoute(ctx context.Context, routeID int64) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Review
	for _, r := range m.reviews {
		if r.RouteID == routeID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is an in-memory implementation of
// LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[int64]redis.VehicleLocation

	// Counters for verification
	UpdateCallCount int32

	// Error injection
	UpdateError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make(map[int64]redis.VehicleLocation),
	}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, vehicleID int64, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[vehicleID] = redis.VehicleLocation{VehicleID: vehicleID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) FindNearbyVehicles(ctx context.Context, lat, lng, radiusKm float64) ([]redis.VehicleLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.VehicleLocation, 0, len(m.locations))
	for _, loc := range m.locations {
		result = append(result, loc)
	}
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, vehicleID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, vehicleID)
	return nil
}

// GetLocation returns the stored position for assertions. The second return
// is false when the vehicle never reported.
func (m *MockLocationStore) GetLocation(vehicleID int64) (redis.VehicleLocation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[vehicleID]
	return loc, ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[int64]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[int64]bool),
	}
}

func (m *MockLockStore) AcquirePaymentLock(ctx context.Context, ticketID int64, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[ticketID] {
		return false, nil
	}
	m.locks[ticketID] = true
	return true, nil
}

func (m *MockLockStore) ReleasePaymentLock(ctx context.Context, ticketID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, ticketID)
	return nil
}

// Hold pre-acquires a lock so the next caller is rejected.
func (m *MockLockStore) Hold(ticketID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[ticketID] = true
}

// ──────────────────────────────────────────────
// MOCK MOBILE MONEY PROVIDER
// ──────────────────────────────────────────────

// MockMomoProvider is a controllable mobile-money provider.
type MockMomoProvider struct {
	// Counters for verification
	ChargeCallCount int32

	// Error injection
	ChargeError error

	// TransactionID is returned on success.
	TransactionID string
}

// NewMockMomoProvider creates a provider whose charges succeed.
func NewMockMomoProvider() *MockMomoProvider {
	return &MockMomoProvider{TransactionID: "MM-test-txn"}
}

func (m *MockMomoProvider) Charge(ctx context.Context, phone string, amount float64) (string, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	if m.ChargeError != nil {
		return "", m.ChargeError
	}
	return m.TransactionID, nil
}
