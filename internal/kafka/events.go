package kafka

import (
	"time"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated = "booking_created"
	EventBookingDeleted = "booking_deleted"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	FlightID   string    `json:"flight_id"`
	SeatNumber string    `json:"seat_number"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking *domain.Booking, email string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Email:      email,
		FlightID:   booking.FlightID,
		SeatNumber: booking.SeatNumber,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}
}
