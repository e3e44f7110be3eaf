package flights

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Find(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetDefaultFlights(ctx context.Context, limit int, flights []domain.Flight) error {
	args := m.Called(ctx, limit, flights)
	return args.Error(0)
}

func testFlight(id, from, to string) domain.Flight {
	dep := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return domain.Flight{
		ID:             id,
		FlightNumber:   "AB123",
		DepartureCity:  from,
		ArrivalCity:    to,
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(2 * time.Hour),
		Price:          4999,
		AvailableSeats: 10,
	}
}

func manyFlights(n int) []domain.Flight {
	flights := make([]domain.Flight, 0, n)
	for i := 0; i < n; i++ {
		flights = append(flights, testFlight(fmt.Sprintf("f%d", i+1), "Mumbai", "Delhi"))
	}
	return flights
}

func cityFilter(from, to string) interface{} {
	return mock.MatchedBy(func(f repository.FlightFilter) bool {
		return f.DepartureCity != nil && *f.DepartureCity == from &&
			f.ArrivalCity != nil && *f.ArrivalCity == to && f.Limit == 0
	})
}

func TestFlightService_SearchFlights(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, 5)
	ctx := context.Background()

	f1 := testFlight("f1", "Mumbai", "Delhi")
	mockRepo.On("Find", ctx, cityFilter("Mumbai", "Delhi")).Return([]domain.Flight{f1}, nil).Once()
	mockRepo.On("Find", ctx, cityFilter("Delhi", "Mumbai")).Return([]domain.Flight{}, nil).Once()

	result, err := service.SearchFlights(ctx, "Mumbai", "Delhi")
	require.NoError(t, err)
	assert.Equal(t, []domain.Flight{f1}, result)

	result, err = service.SearchFlights(ctx, "Delhi", "Mumbai")
	require.NoError(t, err)
	assert.Empty(t, result)

	mockRepo.AssertExpectations(t)
}

func TestFlightService_SearchFlights_EmptyCityIsStillFiltered(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, 5)
	ctx := context.Background()

	mockRepo.On("Find", ctx, cityFilter("", "Delhi")).Return([]domain.Flight{}, nil).Once()

	result, err := service.SearchFlights(ctx, "", "Delhi")
	require.NoError(t, err)
	assert.Empty(t, result)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_SearchFlights_Error(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, 5)
	ctx := context.Background()

	backendErr := fmt.Errorf("select flights: %w", domain.ErrBackend)
	mockRepo.On("Find", ctx, mock.Anything).Return(nil, backendErr).Once()

	result, err := service.SearchFlights(ctx, "Mumbai", "Delhi")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestFlightService_ListDefaultFlights_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, 5)
	ctx := context.Background()

	flights := manyFlights(3)
	mockCache.On("GetDefaultFlights", ctx, 5).Return(nil, nil).Once()
	mockRepo.On("Find", ctx, repository.FlightFilter{Limit: 5}).Return(flights, nil).Once()
	mockCache.On("SetDefaultFlights", ctx, 5, flights).Return(nil).Once()

	result, err := service.ListDefaultFlights(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, flights, result)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_ListDefaultFlights_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, 5)
	ctx := context.Background()

	flights := manyFlights(2)
	mockCache.On("GetDefaultFlights", ctx, 5).Return(flights, nil).Once()

	result, err := service.ListDefaultFlights(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, flights, result)

	mockRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestFlightService_ListDefaultFlights_CacheErrorsIgnored(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, 5)
	ctx := context.Background()

	flights := manyFlights(1)
	mockCache.On("GetDefaultFlights", ctx, 5).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("Find", ctx, repository.FlightFilter{Limit: 5}).Return(flights, nil).Once()
	mockCache.On("SetDefaultFlights", ctx, 5, flights).Return(errors.New("redis down")).Once()

	result, err := service.ListDefaultFlights(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, flights, result)
}

func TestFlightService_ListDefaultFlights_NeverExceedsLimit(t *testing.T) {
	ctx := context.Background()

	for _, n := range []int{0, 1, 5, 6, 12} {
		t.Run(fmt.Sprintf("backend returns %d", n), func(t *testing.T) {
			mockRepo := &MockFlightRepository{}
			service := NewFlightService(mockRepo, nil, 5)
			mockRepo.On("Find", ctx, repository.FlightFilter{Limit: 5}).Return(manyFlights(n), nil).Once()

			result, err := service.ListDefaultFlights(ctx, 5)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(result), 5)
		})
	}

	t.Run("oversized cache entry", func(t *testing.T) {
		mockCache := &MockCache{}
		service := NewFlightService(&MockFlightRepository{}, mockCache, 5)
		mockCache.On("GetDefaultFlights", ctx, 5).Return(manyFlights(9), nil).Once()

		result, err := service.ListDefaultFlights(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, result, 5)
	})
}

func TestFlightService_ListDefaultFlights_DefaultLimit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, 0)
	ctx := context.Background()

	mockRepo.On("Find", ctx, repository.FlightFilter{Limit: DefaultListLimit}).Return(manyFlights(2), nil).Once()

	result, err := service.ListDefaultFlights(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_GetFlight(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, 5)
	ctx := context.Background()

	f1 := testFlight("f1", "Mumbai", "Delhi")
	mockRepo.On("GetByID", ctx, "f1").Return(&f1, nil).Once()
	mockRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound).Once()
	mockRepo.On("GetByID", ctx, "broken").Return(nil, domain.ErrBackend).Once()

	result, err := service.GetFlight(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, &f1, result)

	_, err = service.GetFlight(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, ErrSearchFailed)

	_, err = service.GetFlight(ctx, "broken")
	assert.ErrorIs(t, err, ErrSearchFailed)
}
