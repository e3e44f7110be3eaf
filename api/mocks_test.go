package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, sess session.Provider, flightID string) (*domain.Booking, error) {
	args := m.Called(ctx, sess, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookingsForUser(ctx context.Context, sess session.Provider) ([]domain.Booking, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, sess session.Provider, bookingID string) error {
	args := m.Called(ctx, sess, bookingID)
	return args.Error(0)
}

func testFlight(id, from, to string) domain.Flight {
	dep := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return domain.Flight{
		ID:             id,
		FlightNumber:   "AB123",
		DepartureCity:  from,
		ArrivalCity:    to,
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(2 * time.Hour),
		Price:          499,
		AvailableSeats: 10,
	}
}

// newTestContext returns a gin context whose request carries sess.
func newTestContext(method, target string, body *string, sess session.Provider) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, nil)
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(*body))
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req = req.WithContext(session.WithContext(req.Context(), sess))
	}
	c.Request = req
	return c, w
}

// memLocker is an in-process stand-in for the redis action lock.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]bool{}}
}

func (l *memLocker) AcquireActionLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *memLocker) ReleaseActionLock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

func (l *memLocker) isHeld(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[key]
}
