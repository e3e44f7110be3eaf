package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/repository"
)

const DefaultListLimit = 5

var ErrSearchFailed = errors.New("flight search failed")

type FlightUseCase interface {
	SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	ListDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
}

// FlightCache keeps the unfiltered listing keyed by its limit.
// A miss is reported as nil, nil.
type FlightCache interface {
	GetDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error)
	SetDefaultFlights(ctx context.Context, limit int, flights []domain.Flight) error
}

type FlightService struct {
	repo         repository.FlightRepository
	cache        FlightCache
	defaultLimit int
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache, defaultLimit int) *FlightService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultListLimit
	}
	return &FlightService{repo: repo, cache: cache, defaultLimit: defaultLimit}
}

// SearchFlights returns flights matching both cities exactly. Empty strings are
// matched literally, like any other value.
func (s *FlightService) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	flights, err := s.repo.Find(ctx, repository.FlightFilter{
		DepartureCity: &origin,
		ArrivalCity:   &destination,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	return flights, nil
}

func (s *FlightService) ListDefaultFlights(ctx context.Context, limit int) ([]domain.Flight, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	if s.cache != nil {
		cached, err := s.cache.GetDefaultFlights(ctx, limit)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Warn("flights cache read failed")
		} else if cached != nil {
			return truncate(cached, limit), nil
		}
	}

	flights, err := s.repo.Find(ctx, repository.FlightFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	flights = truncate(flights, limit)

	if s.cache != nil {
		if err := s.cache.SetDefaultFlights(ctx, limit, flights); err != nil {
			logging.FromContext(ctx).WithError(err).Warn("flights cache write failed")
		}
	}
	return flights, nil
}

// GetFlight passes domain.ErrNotFound through unwrapped.
func (s *FlightService) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	return flight, nil
}

func truncate(flights []domain.Flight, limit int) []domain.Flight {
	if len(flights) > limit {
		return flights[:limit]
	}
	return flights
}

var _ FlightUseCase = (*FlightService)(nil)
