package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	FlightID   string        `json:"flight_id"`
	SeatNumber string        `json:"seat_number"`
	Status     BookingStatus `json:"booking_status"`
	CreatedAt  time.Time     `json:"created_at"`
	// Flight is only populated by joined reads.
	Flight *Flight `json:"flight,omitempty"`
}
