package repository

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/pingo/internal/domain"
)

const flightColumns = `id, flight_number, departure_city, arrival_city, departure_time, arrival_time, price, available_seats`

// FlightFilter is the request shape for reads against the flights collection.
// Nil city fields are not filtered on; Limit <= 0 means no cap.
type FlightFilter struct {
	DepartureCity *string
	ArrivalCity   *string
	Limit         int
}

func (f FlightFilter) query() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.DepartureCity != nil {
		args = append(args, *f.DepartureCity)
		conds = append(conds, fmt.Sprintf("departure_city = $%d", len(args)))
	}
	if f.ArrivalCity != nil {
		args = append(args, *f.ArrivalCity)
		conds = append(conds, fmt.Sprintf("arrival_city = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + flightColumns + " FROM flights")
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY departure_time, id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return sb.String(), args
}

func backendError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrBackend, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(row scanner, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.AvailableSeats)
}
