package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/pingo/internal/kafka"
	"github.com/Domenick1991/pingo/internal/logging"
)

// Sender renders booking notifications. Delivery is a structured log line;
// a mail relay can be plugged in behind Send without touching the worker.
type Sender struct {
	from string
}

func NewSender(from string) *Sender {
	if from == "" {
		from = "no-reply@pingo.travel"
	}
	return &Sender{from: from}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		logging.FromContext(ctx).WithField("booking_id", event.BookingID).Warn("booking event without recipient, skipping")
		return nil
	}

	subject, body := render(event)
	logging.FromContext(ctx).
		WithField("from", s.from).
		WithField("to", event.Email).
		WithField("subject", subject).
		WithField("event_id", event.ID).
		Info(body)
	return nil
}

func render(event kafka.BookingEvent) (subject, body string) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Your Pingo booking is confirmed",
			fmt.Sprintf("Booking %s for flight %s is %s, seat %s.", event.BookingID, event.FlightID, event.Status, event.SeatNumber)
	case kafka.EventBookingDeleted:
		return "Your Pingo booking was removed",
			fmt.Sprintf("Booking %s for flight %s has been removed.", event.BookingID, event.FlightID)
	default:
		return "Pingo booking update",
			fmt.Sprintf("Booking %s changed (%s).", event.BookingID, event.Type)
	}
}
