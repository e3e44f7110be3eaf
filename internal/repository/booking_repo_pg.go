package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUserWithFlights(ctx context.Context, userID string) ([]domain.Booking, error)
	// Delete removes the booking owned by userID and returns the removed row.
	Delete(ctx context.Context, id, userID string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, seat_number, booking_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, booking.UserID, booking.FlightID, booking.SeatNumber, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return backendError("insert booking", err)
	}
	return nil
}

func (r *PGBookingRepository) ListByUserWithFlights(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.user_id, b.flight_id, b.seat_number, b.booking_status, b.created_at,
		       f.id, f.flight_number, f.departure_city, f.arrival_city, f.departure_time, f.arrival_time, f.price, f.available_seats
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		WHERE b.user_id = $1
		ORDER BY b.created_at, b.id`, userID)
	if err != nil {
		return nil, backendError("select bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b domain.Booking
			f domain.Flight
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatNumber, &b.Status, &b.CreatedAt,
			&f.ID, &f.FlightNumber, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.AvailableSeats); err != nil {
			return nil, backendError("scan booking", err)
		}
		b.Flight = &f
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, backendError("select bookings", err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id, userID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 AND user_id=$2
		RETURNING id, user_id, flight_id, seat_number, booking_status, created_at`, id, userID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatNumber, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, backendError("delete booking", err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
